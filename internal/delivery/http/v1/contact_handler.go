package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"easein-studio-backend/internal/delivery/http/response"
	"easein-studio-backend/internal/domain"
	"easein-studio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	ContactPath = "/contact_api.php"
	UploadField = "reference_upload"

	msgContactSent = "Your message has been sent successfully. We will get back to you soon."
	// Room for the text fields and multipart framing on top of the file
	formOverhead = 1 << 20
)

type ContactHandler struct {
	contactUC      domain.ContactUsecase
	maxUploadBytes int64
}

// NewContactHandler registers the relay endpoint (public, no auth required)
func NewContactHandler(r gin.IRoutes, contactUC domain.ContactUsecase, maxUploadBytes int64, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC:      contactUC,
		maxUploadBytes: maxUploadBytes,
	}

	r.POST(ContactPath, limit, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a contact form submission to the studio inbox and sends the submitter a confirmation.
// @Tags         contact
// @Accept       multipart/form-data
// @Produce      json
// @Param        name              formData  string  true   "Full name"
// @Param        email             formData  string  true   "Email address"
// @Param        phone             formData  string  true   "Phone number"
// @Param        video_type        formData  string  true   "Type of video"
// @Param        project_details   formData  string  true   "Project details"
// @Param        reference_upload  formData  file    false  "Reference file"
// @Success      200  {object}  response.Response
// @Failure      405  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /contact_api.php [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+formOverhead)

	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	fh, err := c.FormFile(UploadField)
	switch {
	case err == nil:
		upload, err := readUpload(fh)
		if err != nil {
			c.Error(apperror.BadRequest("Could not read reference upload."))
			return
		}
		req.Upload = upload
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no file
	default:
		c.Error(bindError(err))
		return
	}

	if _, err := h.contactUC.Submit(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, msgContactSent, nil)
}

func bindError(err error) *apperror.AppError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.Validation([]string{"Reference upload is too large."})
	}
	return apperror.New(http.StatusBadRequest, "Invalid form data.", err)
}

func readUpload(fh *multipart.FileHeader) (*domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return &domain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
