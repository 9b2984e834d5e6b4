package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPTransport sends messages through one SMTP endpoint.
type SMTPTransport struct {
	cfg SMTPConfig
}

var _ Transport = (*SMTPTransport)(nil)

func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

// NewSMTPTransports builds one transport per config, keeping the order.
func NewSMTPTransports(configs []SMTPConfig) []Transport {
	transports := make([]Transport, 0, len(configs))
	for _, cfg := range configs {
		transports = append(transports, NewSMTPTransport(cfg))
	}
	return transports
}

func (t *SMTPTransport) Name() string {
	return t.cfg.Name()
}

// Send dials once and delivers all messages sequentially on that session.
func (t *SMTPTransport) Send(ctx context.Context, msgs ...*Message) error {
	built := make([]*mail.Msg, 0, len(msgs))
	for _, m := range msgs {
		msg, err := buildMsg(m)
		if err != nil {
			return err
		}
		built = append(built, msg)
	}

	client, err := mail.NewClient(t.cfg.Host, t.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, built...); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", t.Name(), err)
	}

	return nil
}

func (t *SMTPTransport) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
	}
	if t.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(t.cfg.Timeout))
	}
	if t.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(t.cfg.Username),
			mail.WithPassword(t.cfg.Password),
		)
	}

	switch t.cfg.Encryption {
	case EncryptionSMTPS:
		opts = append(opts, mail.WithSSL())
	case EncryptionNone:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	return opts
}

func buildMsg(m *Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	msg.SetCharset(mail.CharsetUTF8)

	if err := msg.FromFormat(m.From.Name, m.From.Email); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	for _, to := range m.To {
		if err := msg.AddToFormat(to.Name, to.Email); err != nil {
			return nil, fmt.Errorf("invalid recipient address: %w", err)
		}
	}
	if m.ReplyTo != nil {
		if err := msg.ReplyToFormat(m.ReplyTo.Name, m.ReplyTo.Email); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTML)
	if m.Text != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, m.Text)
	}

	for _, a := range m.Attachments {
		if err := msg.AttachReader(a.Filename, bytes.NewReader(a.Data), fileOptions(a)...); err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Filename, err)
		}
	}
	for _, a := range m.Inline {
		opts := fileOptions(a)
		if a.ContentID != "" {
			opts = append(opts, mail.WithFileContentID(a.ContentID))
		}
		if err := msg.EmbedReader(a.Filename, bytes.NewReader(a.Data), opts...); err != nil {
			return nil, fmt.Errorf("failed to embed %s: %w", a.Filename, err)
		}
	}

	return msg, nil
}

func fileOptions(a Attachment) []mail.FileOption {
	if a.ContentType == "" {
		return nil
	}
	return []mail.FileOption{mail.WithFileContentType(mail.ContentType(a.ContentType))}
}
