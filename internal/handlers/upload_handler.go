package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"alfredoptarigan/candidate-intake/internal/logger"
	"alfredoptarigan/candidate-intake/internal/models"
	"alfredoptarigan/candidate-intake/internal/services"
)

// ResumeField is the multipart field carrying the résumé file.
const ResumeField = "resume"

type UploadHandler struct {
	intakeService services.IntakeService
	log           *zap.Logger
}

func NewUploadHandler(intakeService services.IntakeService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		intakeService: intakeService,
		log:           logger.WithFields(log),
	}
}

// HandleUpload handles /api/upload. Only POST is accepted.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	log := h.log.With(logger.String(logger.FieldRequestID, requestID(c)))

	if c.Method() != fiber.MethodPost {
		return h.fail(c, log, services.NewIntakeError(
			services.ErrMethodNotAllowed,
			"Method Not Allowed",
			fmt.Errorf("unexpected method %s", c.Method()),
		))
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("multipart parse failed", zap.Error(err))
		return h.fail(c, log, services.NewIntakeError(services.ErrBadRequest, "File upload error", err))
	}

	resume, err := readResume(form)
	if err != nil {
		return h.fail(c, log, err)
	}

	submission := services.Submission{
		Name:       formValue(form, "name"),
		Email:      formValue(form, "email"),
		LinkedIn:   formValue(form, "linkedin"),
		Skills:     formValue(form, "skills"),
		Experience: formValue(form, "experience"),
		Resume:     resume,
	}

	resp, err := h.intakeService.Process(c.UserContext(), submission)
	if err != nil {
		return h.fail(c, log, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// fail writes the uniform error body.
func (h *UploadHandler) fail(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := uploadStatus(err)
	if status == fiber.StatusMethodNotAllowed {
		log.Warn("upload rejected", zap.Error(err))
	} else {
		log.Error("upload failed", zap.Error(err))
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Error: services.UserMessage(err),
	})
}

// uploadStatus maps a failure to its status code. Only the method check
// has its own code; every pipeline failure is a 500.
func uploadStatus(err error) int {
	if errors.Is(err, services.ErrMethodNotAllowed) {
		return fiber.StatusMethodNotAllowed
	}
	return fiber.StatusInternalServerError
}

func readResume(form *multipart.Form) ([]byte, error) {
	files := form.File[ResumeField]
	if len(files) == 0 {
		return nil, services.NewIntakeError(services.ErrBadRequest, "No file uploaded", nil)
	}
	if len(files) > 1 {
		return nil, services.NewIntakeError(
			services.ErrBadRequest,
			"File upload error",
			fmt.Errorf("expected one %q file, got %d", ResumeField, len(files)),
		)
	}

	src, err := files[0].Open()
	if err != nil {
		return nil, services.NewIntakeError(services.ErrBadRequest, "File upload error", err)
	}
	defer src.Close()

	// A zero-byte part is still a file; the extractor rejects it.
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, services.NewIntakeError(services.ErrBadRequest, "File upload error", err)
	}

	return data, nil
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}
