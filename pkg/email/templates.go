package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"easein-studio-backend/config"
)

// PreviewContentID is the cid of the inline image preview in admin mail.
const PreviewContentID = "reference-preview"

// Brand holds the palette and logo used by both contact mails.
type Brand struct {
	Name           string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	Background     string
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	Name           string
	Email          string
	Phone          string
	VideoType      string
	ProjectDetails string
	SubmittedAt    time.Time
	Attachment     *Attachment // admin mail only
	Preview        *Attachment // inline JPEG preview of an image attachment
}

// Composer renders the admin notification and the user confirmation.
type Composer struct {
	brand  Brand
	from   Address
	admin  Address
	styles map[string]template.CSS
	html   *template.Template
	text   *texttemplate.Template
}

// NewComposer parses the templates once. Brand colors come from trusted
// configuration and are inserted into style attributes verbatim.
func NewComposer(brand Brand, from, admin Address) (*Composer, error) {
	c := &Composer{
		brand:  brand,
		from:   from,
		admin:  admin,
		styles: buildStyles(brand),
	}

	funcs := template.FuncMap{
		"style": func(name string) template.CSS { return c.styles[name] },
		"nl2br": nl2br,
	}

	html, err := template.New("contact").Funcs(funcs).Parse(adminHTMLTemplate + userHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}
	text, err := texttemplate.New("contact").Parse(adminTextTemplate + userTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email text template: %w", err)
	}

	c.html = html
	c.text = text
	return c, nil
}

// NewComposerFromConfig wires brand, sender and admin inbox from config.
func NewComposerFromConfig(cfg *config.Config) (*Composer, error) {
	return NewComposer(
		Brand{
			Name:           cfg.BrandName,
			LogoURL:        cfg.BrandLogoURL,
			PrimaryColor:   cfg.BrandPrimaryColor,
			SecondaryColor: cfg.BrandSecondaryColor,
			Background:     cfg.BrandBackground,
		},
		Address{Name: cfg.SMTPFromName, Email: cfg.SMTPFromEmail},
		Address{Name: cfg.ContactNameTo, Email: cfg.ContactEmailTo},
	)
}

type templateView struct {
	Brand          Brand
	Name           string
	Email          string
	Phone          string
	VideoTypeLabel string
	ProjectDetails string
	SubmittedAt    string
	HasPreview     bool
	PreviewCID     string
	AttachmentName string
}

func (c *Composer) view(d ContactEmailData) templateView {
	label := d.VideoType
	if label == "" {
		label = "Not specified"
	}
	v := templateView{
		Brand:          c.brand,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		VideoTypeLabel: label,
		ProjectDetails: d.ProjectDetails,
		SubmittedAt:    d.SubmittedAt.Format("2006-01-02 15:04:05"),
		HasPreview:     d.Preview != nil,
		PreviewCID:     PreviewContentID,
	}
	if d.Attachment != nil {
		v.AttachmentName = d.Attachment.Filename
	}
	return v
}

// AdminNotification goes to the studio inbox with Reply-To set to the client.
func (c *Composer) AdminNotification(d ContactEmailData) (*Message, error) {
	v := c.view(d)
	html, text, err := c.render("admin", v)
	if err != nil {
		return nil, err
	}

	msg := &Message{
		From:    c.from,
		To:      []Address{c.admin},
		ReplyTo: &Address{Name: d.Name, Email: d.Email},
		Subject: fmt.Sprintf("New Contact Enquiry - %s", c.brand.Name),
		HTML:    html,
		Text:    text,
	}
	if d.Attachment != nil {
		msg.Attachments = append(msg.Attachments, *d.Attachment)
	}
	if d.Preview != nil {
		preview := *d.Preview
		preview.ContentID = PreviewContentID
		msg.Inline = append(msg.Inline, preview)
	}
	return msg, nil
}

// Confirmation goes back to the client. It never carries the upload.
func (c *Composer) Confirmation(d ContactEmailData) (*Message, error) {
	html, text, err := c.render("user", c.view(d))
	if err != nil {
		return nil, err
	}
	return &Message{
		From:    c.from,
		To:      []Address{{Name: d.Name, Email: d.Email}},
		Subject: fmt.Sprintf("We received your enquiry - %s", c.brand.Name),
		HTML:    html,
		Text:    text,
	}, nil
}

// Compose returns the admin notification followed by the confirmation, the
// order in which they are sent.
func (c *Composer) Compose(d ContactEmailData) ([]*Message, error) {
	admin, err := c.AdminNotification(d)
	if err != nil {
		return nil, err
	}
	user, err := c.Confirmation(d)
	if err != nil {
		return nil, err
	}
	return []*Message{admin, user}, nil
}

func (c *Composer) render(name string, v templateView) (string, string, error) {
	var html, text bytes.Buffer
	if err := c.html.ExecuteTemplate(&html, name+"_html", v); err != nil {
		return "", "", fmt.Errorf("failed to execute email template: %w", err)
	}
	if err := c.text.ExecuteTemplate(&text, name+"_text", v); err != nil {
		return "", "", fmt.Errorf("failed to execute email text template: %w", err)
	}
	return html.String(), text.String(), nil
}

// nl2br escapes s and turns line breaks into <br> tags.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}

func buildStyles(b Brand) map[string]template.CSS {
	css := func(format string, args ...any) template.CSS {
		return template.CSS(fmt.Sprintf(format, args...))
	}
	return map[string]template.CSS{
		"wrapper": css("margin:0;padding:24px;background:radial-gradient(circle at top, %s16 0, %s 55%%, #000000 100%%);"+
			"font-family:system-ui,-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif;color:#e6f9ff;", b.SecondaryColor, b.Background),
		"card": css("max-width:640px;margin:0 auto;background:rgba(2,20,28,0.98);border-radius:18px;padding:24px 24px 28px;"+
			"box-shadow:0 20px 50px rgba(0,0,0,0.75);border:1px solid %s33;", b.SecondaryColor),
		"logoRow": css("display:flex;align-items:center;justify-content:space-between;margin-bottom:18px;"),
		"badge": css("font-size:11px;letter-spacing:0.12em;text-transform:uppercase;color:%s;background:%s1a;"+
			"border-radius:999px;padding:4px 10px;border:1px solid %s40;", b.PrimaryColor, b.PrimaryColor, b.PrimaryColor),
		"h1":      css("font-size:20px;margin:0 0 10px;color:#f5fbff;"),
		"meta":    css("font-size:12px;color:#9adff0;margin-bottom:18px;"),
		"label":   css("font-size:13px;color:#9adff0;margin:0 0 3px;"),
		"value":   css("font-size:14px;color:#ecfdff;margin:0 0 10px;"),
		"divider": css("border:none;border-top:1px solid %s33;margin:18px 0;", b.SecondaryColor),
		"footer":  css("font-size:11px;color:#8abfd0;margin-top:16px;"),
		"button": css("display:inline-block;margin-top:16px;padding:8px 18px;border-radius:999px;"+
			"background:linear-gradient(135deg, %s, %s);color:#02060a;text-decoration:none;font-size:13px;font-weight:600;",
			b.PrimaryColor, b.SecondaryColor),
		"preview": css("max-width:100%%;border-radius:12px;margin:6px 0 10px;display:block;"),
	}
}

const adminHTMLTemplate = `{{define "admin_html"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>New Enquiry - {{.Brand.Name}}</title>
</head>
<body style="{{style "wrapper"}}">
  <div style="{{style "card"}}">
    <div style="{{style "logoRow"}}">
      <div><img src="{{.Brand.LogoURL}}" alt="{{.Brand.Name}}" style="height:32px;display:block;"></div>
      <div style="{{style "badge"}}">New enquiry</div>
    </div>
    <h1 style="{{style "h1"}}">New contact enquiry received</h1>
    <div style="{{style "meta"}}">Submitted at <strong>{{.SubmittedAt}}</strong></div>
    <div style="margin-bottom:14px;">
      <p style="{{style "label"}}">Name</p>
      <p style="{{style "value"}}">{{.Name}}</p>
      <p style="{{style "label"}}">Email</p>
      <p style="{{style "value"}}">{{.Email}}</p>
      <p style="{{style "label"}}">Phone</p>
      <p style="{{style "value"}}">{{.Phone}}</p>
      <p style="{{style "label"}}">Type of Video</p>
      <p style="{{style "value"}}">{{.VideoTypeLabel}}</p>
    </div>
    <hr style="{{style "divider"}}" />
    <div>
      <p style="{{style "label"}}">Project Details</p>
      <p style="{{style "value"}}">{{nl2br .ProjectDetails}}</p>
    </div>
    {{- if .AttachmentName}}
    <div>
      <p style="{{style "label"}}">Reference upload</p>
      <p style="{{style "value"}}">{{.AttachmentName}} (attached)</p>
      {{- if .HasPreview}}
      <img src="cid:{{.PreviewCID}}" alt="{{.AttachmentName}}" style="{{style "preview"}}">
      {{- end}}
    </div>
    {{- end}}
    <a href="mailto:{{.Email}}" style="{{style "button"}}">Reply to client</a>
    <div style="{{style "footer"}}">This email was automatically generated from the {{.Brand.Name}} contact form.</div>
  </div>
</body>
</html>
{{end}}`

const userHTMLTemplate = `{{define "user_html"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>We received your enquiry - {{.Brand.Name}}</title>
</head>
<body style="{{style "wrapper"}}">
  <div style="{{style "card"}}">
    <div style="{{style "logoRow"}}">
      <div><img src="{{.Brand.LogoURL}}" alt="{{.Brand.Name}}" style="height:32px;display:block;"></div>
      <div style="{{style "badge"}}">Enquiry received</div>
    </div>
    <h1 style="{{style "h1"}}">Thanks for reaching out, {{.Name}} 👋</h1>
    <div style="{{style "meta"}}">We’ve received your enquiry and our team will get back to you within 24 hours.</div>
    <div style="margin-bottom:14px;">
      <p style="{{style "label"}}">Type of Video</p>
      <p style="{{style "value"}}">{{.VideoTypeLabel}}</p>
      <p style="{{style "label"}}">Phone</p>
      <p style="{{style "value"}}">{{.Phone}}</p>
    </div>
    <hr style="{{style "divider"}}" />
    <div>
      <p style="{{style "label"}}">Your message</p>
      <p style="{{style "value"}}">{{nl2br .ProjectDetails}}</p>
    </div>
    <p style="{{style "footer"}}">
      If any detail needs correction, you can simply reply to this email.<br>
      {{.Brand.Name}} Team
    </p>
  </div>
</body>
</html>
{{end}}`

const adminTextTemplate = `{{define "admin_text"}}New contact enquiry

Name: {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}
Type of Video: {{.VideoTypeLabel}}
Project Details:
{{.ProjectDetails}}
{{if .AttachmentName}}Reference upload: {{.AttachmentName}}
{{end}}Submitted At: {{.SubmittedAt}}
{{end}}`

const userTextTemplate = `{{define "user_text"}}Hi {{.Name}},

Thank you for reaching out to {{.Brand.Name}}!
We’ve received your enquiry and will get back to you within 24 hours.

Summary of your request:
- Type of Video: {{.VideoTypeLabel}}
- Phone: {{.Phone}}

Your message:
{{.ProjectDetails}}

Best regards,
{{.Brand.Name}} Team
{{end}}`
