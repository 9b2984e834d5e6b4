package security_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"easein-studio-backend/pkg/security"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		valid    bool
		errMsg   string
	}{
		{name: "png", filename: "ref.PNG", data: pngBytes(t), valid: true},
		{name: "pdf", filename: "brief.pdf", data: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"), valid: true},
		{name: "plain text", filename: "notes.txt", data: []byte("thirty second spot, upbeat"), valid: true},
		{name: "no extension", filename: "brief", data: []byte("%PDF-1.4"), errMsg: "file has no extension"},
		{name: "executable", filename: "setup.exe", data: []byte("MZ\x90\x00"), errMsg: "file extension not allowed: .exe"},
		{name: "renamed binary", filename: "photo.jpg", data: []byte("MZ\x90\x00\x03\x00"), errMsg: "file content does not match extension"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := security.ValidateUpload(tc.filename, tc.data)

			assert.Equal(t, tc.valid, res.Valid, res.Error)
			if tc.errMsg != "" {
				assert.Equal(t, tc.errMsg, res.Error)
			}
		})
	}

	t.Run("image extensions", func(t *testing.T) {
		assert.True(t, security.IsImageExtension(".JPG"))
		assert.False(t, security.IsImageExtension(".pdf"))
		assert.Contains(t, security.GetAllowedExtensions(), ".mov")
		assert.NoError(t, security.ValidateFileExtension("cut.mp4"))
		assert.Error(t, security.ValidateFileExtension("cut.bat"))
	})
}

func TestUploadLimiter(t *testing.T) {
	t.Run("fails open without redis", func(t *testing.T) {
		ul := security.NewUploadLimiter(func() *goredis.Client { return nil }, 1, time.Hour)

		allowed, retry, err := ul.AllowUpload(context.Background(), "203.0.113.7")

		assert.True(t, allowed)
		assert.Zero(t, retry)
		assert.ErrorIs(t, err, security.ErrLimiterUnavailable)
	})

	t.Run("nil client source", func(t *testing.T) {
		ul := security.NewUploadLimiter(nil, 0, 0)

		allowed, _, err := ul.AllowUpload(context.Background(), "203.0.113.7")

		assert.True(t, allowed)
		assert.ErrorIs(t, err, security.ErrLimiterUnavailable)
	})
}

func TestAuditLogger(t *testing.T) {
	newObserved := func() (*security.AuditLogger, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.DebugLevel)
		return security.NewAuditLogger(zap.New(core), "relay-test", "test"), logs
	}

	t.Run("submission events mask the email", func(t *testing.T) {
		al, logs := newObserved()
		ctx := security.WithRequestMeta(context.Background(), security.RequestMeta{
			IP: "203.0.113.7", UserAgent: "curl/8.5.0", RequestID: "req-1",
		})

		al.LogSubmission(ctx, security.EventSubmissionRelayed, "Ada@Example.com", map[string]interface{}{"transport": "smtp:465"})

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		assert.Equal(t, string(security.EventSubmissionRelayed), entry.Message)

		fields := entry.ContextMap()
		assert.Equal(t, "A***@Example.com", fields["subject_value"])
		assert.Equal(t, "203.0.113.7", fields["ip"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Contains(t, fields["details"], security.HashValue("ada@example.com"))
		assert.NotContains(t, fields["details"], "Ada@Example.com")
	})

	t.Run("levels follow the event", func(t *testing.T) {
		al, logs := newObserved()
		ctx := context.Background()

		al.LogSubmission(ctx, security.EventValidationFailed, "a@b.co", nil)
		al.LogSubmission(ctx, security.EventMailSendFailed, "a@b.co", nil)
		al.LogRateLimitTriggered(ctx, "203.0.113.7", "curl/8.5.0", "req-2", "/contact_api.php")

		levels := []zapcore.Level{}
		for _, e := range logs.All() {
			levels = append(levels, e.Level)
		}
		assert.Equal(t, []zapcore.Level{zapcore.WarnLevel, zapcore.ErrorLevel, zapcore.WarnLevel}, levels)
	})

	t.Run("nil logger is a no-op", func(t *testing.T) {
		var al *security.AuditLogger
		assert.NotPanics(t, func() {
			al.LogSubmission(context.Background(), security.EventUploadRejected, "a@b.co", nil)
		})
		assert.NoError(t, al.Sync())
	})

	t.Run("mask edge cases", func(t *testing.T) {
		assert.Equal(t, "***", security.MaskEmail("ab"))
		assert.Equal(t, "***@example.com", security.MaskEmail("a@example.com"))
		assert.Equal(t, "***", security.MaskEmail("not-an-email"))
		assert.Equal(t, "***", security.MaskEmail("ada.lima"))
		assert.Equal(t, "***@example.com", security.MaskEmail("@example.com"))
	})
}
