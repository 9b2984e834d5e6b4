package email

// Address is a display name plus mailbox.
type Address struct {
	Name  string
	Email string
}

// Attachment is an in-memory file part. A non-empty ContentID makes it an
// inline part that HTML bodies can reference as cid:<ContentID>.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
	ContentID   string
}

// Message is a transport-independent outgoing mail.
type Message struct {
	From        Address
	To          []Address
	ReplyTo     *Address
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
	Inline      []Attachment
}
