package email_test

import (
	"testing"
	"time"

	"easein-studio-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer(t *testing.T) {
	c, err := email.NewComposer(
		email.Brand{Name: "Easein Studio", LogoURL: "https://example.com/logo.png", PrimaryColor: "#00eaff"},
		email.Address{Name: "Easein Studio", Email: "info@example.com"},
		email.Address{Name: "Team", Email: "team@example.com"},
	)
	require.NoError(t, err)

	data := email.ContactEmailData{
		Name:           "Ana <b>Lima</b>",
		Email:          "ana@example.com",
		Phone:          "555-0100",
		ProjectDetails: "Line one\nLine <two>",
		SubmittedAt:    time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Attachment:     &email.Attachment{Filename: "brief.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		Preview:        &email.Attachment{Filename: "preview.jpg", ContentType: "image/jpeg", Data: []byte{0xFF, 0xD8}},
	}

	msgs, err := c.Compose(data)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	admin, user := msgs[0], msgs[1]

	t.Run("Admin notification", func(t *testing.T) {
		assert.Equal(t, "New Contact Enquiry - Easein Studio", admin.Subject)
		assert.Equal(t, []email.Address{{Name: "Team", Email: "team@example.com"}}, admin.To)
		require.NotNil(t, admin.ReplyTo)
		assert.Equal(t, "ana@example.com", admin.ReplyTo.Email)

		assert.Contains(t, admin.HTML, "Ana &lt;b&gt;Lima&lt;/b&gt;")
		assert.NotContains(t, admin.HTML, "<b>Lima</b>")
		assert.Contains(t, admin.HTML, "Line one<br>\nLine &lt;two&gt;")
		assert.Contains(t, admin.HTML, "Not specified")
		assert.Contains(t, admin.HTML, "cid:"+email.PreviewContentID)
		assert.Contains(t, admin.HTML, "2024-05-01 09:30:00")
		assert.Contains(t, admin.Text, "Reference upload: brief.pdf")

		require.Len(t, admin.Attachments, 1)
		require.Len(t, admin.Inline, 1)
		assert.Equal(t, email.PreviewContentID, admin.Inline[0].ContentID)
	})

	t.Run("Confirmation carries no upload", func(t *testing.T) {
		assert.Equal(t, "We received your enquiry - Easein Studio", user.Subject)
		assert.Equal(t, "ana@example.com", user.To[0].Email)
		assert.Nil(t, user.ReplyTo)
		assert.Empty(t, user.Attachments)
		assert.Empty(t, user.Inline)
		assert.NotContains(t, user.HTML, "brief.pdf")
		assert.Contains(t, user.Text, "Hi Ana <b>Lima</b>,")
	})
}
