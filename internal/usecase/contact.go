package usecase

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"easein-studio-backend/internal/domain"
	"easein-studio-backend/pkg/apperror"
	"easein-studio-backend/pkg/email"
	"easein-studio-backend/pkg/imaging"
	"easein-studio-backend/pkg/logger"
	"easein-studio-backend/pkg/security"
	"easein-studio-backend/pkg/security/antivirus"
	"easein-studio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	msgUploadTooLarge   = "Reference upload is too large."
	msgUploadNotAllowed = "Reference upload type is not allowed."
	msgUploadRejected   = "Reference upload was rejected."
)

// UploadLimiter limits reference uploads per client.
type UploadLimiter interface {
	AllowUpload(ctx context.Context, ip string) (bool, int, error)
}

// ContactOptions holds the optional collaborators of the contact usecase.
type ContactOptions struct {
	Scanner        antivirus.Scanner
	UploadLimiter  UploadLimiter
	Audit          *security.AuditLogger
	MaxUploadBytes int64
	Now            func() time.Time
}

type contactUsecase struct {
	sender   email.Sender
	composer *email.Composer
	validate *validator.Validate
	opts     ContactOptions
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender email.Sender, composer *email.Composer, validate *validator.Validate, opts ContactOptions) domain.ContactUsecase {
	if validate == nil {
		validate = validation.Validator()
	}
	if opts.Scanner == nil {
		opts.Scanner = antivirus.NewNoOpScanner()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &contactUsecase{
		sender:   sender,
		composer: composer,
		validate: validate,
		opts:     opts,
	}
}

// Submit validates the request and relays both mails. Either mail failing
// on every transport fails the whole submission.
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.ContactReceipt, error) {
	in := normalize(req)

	if err := uc.validate.Struct(in); err != nil {
		details := validation.FormatValidationErrors(err)
		uc.opts.Audit.LogSubmission(ctx, security.EventValidationFailed, in.Email, map[string]interface{}{
			"errors": details,
		})
		return nil, apperror.Validation(details)
	}

	data := email.ContactEmailData{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		VideoType:      in.VideoType,
		ProjectDetails: in.ProjectDetails,
		SubmittedAt:    uc.opts.Now(),
	}

	if in.Upload != nil {
		attachment, preview, err := uc.checkUpload(ctx, in)
		if err != nil {
			return nil, err
		}
		data.Attachment = attachment
		data.Preview = preview
	}

	msgs, err := uc.composer.Compose(data)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	report, err := uc.sender.Send(ctx, msgs...)
	if err != nil {
		debug := err.Error()
		var sendErr *email.SendError
		if errors.As(err, &sendErr) && sendErr.First() != nil {
			debug = sendErr.First().Error()
		}
		uc.opts.Audit.LogSubmission(ctx, security.EventMailSendFailed, in.Email, map[string]interface{}{
			"attempts": len(report.Attempts),
			"error":    err.Error(),
		})
		return nil, apperror.MailSendFailure(err, debug)
	}

	if report.UsedFallback() {
		uc.opts.Audit.LogSubmission(ctx, security.EventMailFallbackUsed, in.Email, map[string]interface{}{
			"transport": report.Transport,
			"primary":   report.Attempts[0].Transport,
			"error":     report.Attempts[0].Err.Error(),
		})
	}
	uc.opts.Audit.LogSubmission(ctx, security.EventSubmissionRelayed, in.Email, map[string]interface{}{
		"transport":      report.Transport,
		"has_attachment": data.Attachment != nil,
	})

	return &domain.ContactReceipt{
		Transport:    report.Transport,
		UsedFallback: report.UsedFallback(),
		SubmittedAt:  data.SubmittedAt,
	}, nil
}

// checkUpload applies the size limit, upload rate limit, type checks and the
// malware scan, then builds the attachment and an optional preview.
func (uc *contactUsecase) checkUpload(ctx context.Context, in *domain.ContactRequest) (*email.Attachment, *email.Attachment, error) {
	up := in.Upload
	ip := security.RequestMetaFrom(ctx).IP

	reject := func(reason, detail string) error {
		uc.opts.Audit.LogSubmission(ctx, security.EventUploadRejected, in.Email, map[string]interface{}{
			"filename": up.Filename,
			"size":     len(up.Data),
			"reason":   detail,
		})
		return apperror.Validation([]string{reason})
	}

	if int64(len(up.Data)) > uc.opts.MaxUploadBytes {
		return nil, nil, reject(msgUploadTooLarge, "size limit exceeded")
	}

	if uc.opts.UploadLimiter != nil {
		allowed, retryAfter, err := uc.opts.UploadLimiter.AllowUpload(ctx, ip)
		// Without Redis the limiter is off for good and main already said so.
		if err != nil && !errors.Is(err, security.ErrLimiterUnavailable) {
			logger.Log.Warn("Upload limiter degraded", "error", err)
		}
		if !allowed {
			uc.opts.Audit.LogSubmission(ctx, security.EventRateLimitTriggered, in.Email, map[string]interface{}{
				"scope":       "upload",
				"retry_after": retryAfter,
			})
			return nil, nil, apperror.TooManyRequests("Too many uploads. Please try again later.")
		}
	}

	result := security.ValidateUpload(up.Filename, up.Data)
	if !result.Valid {
		return nil, nil, reject(msgUploadNotAllowed, result.Error)
	}

	scan := uc.opts.Scanner.Scan(ctx, up.Filename, bytes.NewReader(up.Data))
	if scan.Infected {
		detail := scan.ThreatName
		if scan.Error != nil {
			detail = scan.Error.Error()
			logger.Log.Error("Upload scan failed", "scanner", scan.ScannerName, "error", scan.Error)
		}
		return nil, nil, reject(msgUploadRejected, detail)
	}

	attachment := &email.Attachment{
		Filename:    filepath.Base(up.Filename),
		ContentType: result.DetectedMIME,
		Data:        up.Data,
	}

	var preview *email.Attachment
	if security.IsImageExtension(result.Extension) {
		thumb, err := imaging.Thumbnail(up.Data, imaging.DefaultMaxWidth)
		if err != nil {
			logger.Log.Warn("Skipping upload preview", "filename", attachment.Filename, "error", err)
		} else {
			preview = &email.Attachment{
				Filename:    "preview.jpg",
				ContentType: "image/jpeg",
				Data:        thumb,
				ContentID:   email.PreviewContentID,
			}
		}
	}

	return attachment, preview, nil
}

func normalize(req *domain.ContactRequest) *domain.ContactRequest {
	out := *req
	out.Name = strings.TrimSpace(req.Name)
	out.Email = strings.TrimSpace(req.Email)
	out.Phone = strings.TrimSpace(req.Phone)
	out.VideoType = strings.TrimSpace(req.VideoType)
	out.ProjectDetails = strings.TrimSpace(req.ProjectDetails)
	return &out
}
