package email_test

import (
	"context"
	"errors"
	"testing"

	"easein-studio-backend/config"
	"easein-studio-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	name  string
	err   error
	calls int
	got   []*email.Message
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) Send(ctx context.Context, msgs ...*email.Message) error {
	f.calls++
	f.got = msgs
	return f.err
}

func TestRelay(t *testing.T) {
	msgs := []*email.Message{{Subject: "admin"}, {Subject: "user"}}

	t.Run("Primary delivers", func(t *testing.T) {
		primary := &fakeTransport{name: "smtps"}
		fallback := &fakeTransport{name: "starttls"}

		report, err := email.NewRelay(primary, fallback).Send(context.Background(), msgs...)
		require.NoError(t, err)
		assert.Equal(t, "smtps", report.Transport)
		assert.False(t, report.UsedFallback())
		assert.Equal(t, 1, primary.calls)
		assert.Zero(t, fallback.calls)
		assert.Len(t, primary.got, 2)
	})

	t.Run("Fallback is tried once after the primary fails", func(t *testing.T) {
		primary := &fakeTransport{name: "smtps", err: errors.New("handshake failure")}
		fallback := &fakeTransport{name: "starttls"}

		report, err := email.NewRelay(primary, fallback).Send(context.Background(), msgs...)
		require.NoError(t, err)
		assert.Equal(t, "starttls", report.Transport)
		assert.True(t, report.UsedFallback())
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("All transports failing returns the primary error first", func(t *testing.T) {
		first := errors.New("535 auth failed")
		primary := &fakeTransport{name: "smtps", err: first}
		fallback := &fakeTransport{name: "starttls", err: errors.New("connection refused")}

		report, err := email.NewRelay(primary, fallback).Send(context.Background(), msgs...)
		require.Error(t, err)
		assert.Empty(t, report.Transport)
		assert.Len(t, report.Attempts, 2)

		var sendErr *email.SendError
		require.ErrorAs(t, err, &sendErr)
		assert.Equal(t, first, sendErr.First())
		assert.ErrorIs(t, err, first)
		assert.Contains(t, err.Error(), "starttls: connection refused")
	})

	t.Run("Cancelled context stops before dialing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		primary := &fakeTransport{name: "smtps"}

		_, err := email.NewRelay(primary).Send(ctx, msgs...)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, primary.calls)
	})

	t.Run("No transports", func(t *testing.T) {
		_, err := email.NewRelay().Send(context.Background(), msgs...)
		assert.ErrorIs(t, err, email.ErrNoTransports)
	})
}

func TestTransportConfigs(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:           "smtp.example.com",
		SMTPPort:           465,
		SMTPFallbackHost:   "smtp.example.com",
		SMTPFallbackPort:   587,
		SMTPUsername:       "info@example.com",
		SMTPPassword:       "secret",
		SMTPTimeoutSeconds: 15,
	}

	configs := email.TransportConfigs(cfg)
	require.Len(t, configs, 2)
	assert.Equal(t, email.EncryptionSMTPS, configs[0].Encryption)
	assert.Equal(t, email.EncryptionSTARTTLS, configs[1].Encryption)
	assert.Equal(t, "smtp.example.com:587/starttls", configs[1].Name())
	assert.Equal(t, "secret", configs[1].Password)

	cfg.SMTPFallbackPort = 465
	assert.Len(t, email.TransportConfigs(cfg), 1)

	assert.Equal(t, email.EncryptionNone, email.ParseEncryption("NONE", 25))
	assert.Equal(t, email.EncryptionSTARTTLS, email.ParseEncryption("bogus", 2525))
	assert.True(t, email.IsConfigured(cfg))
}
