package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/observability"
)

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// AttachmentProcessor validates client attachments and turns them into stored ones.
type AttachmentProcessor struct {
	validator *validator.Validate
	uploader  FileUploader
	maxBytes  int
	logger    zerolog.Logger
}

// NewAttachmentProcessor builds a processor. A nil uploader keeps images inline.
func NewAttachmentProcessor(validate *validator.Validate, uploader FileUploader, maxBytes int, logger zerolog.Logger) *AttachmentProcessor {
	return &AttachmentProcessor{
		validator: validate,
		uploader:  uploader,
		maxBytes:  maxBytes,
		logger:    logger.With().Str("component", "attachment_processor").Logger(),
	}
}

// Process checks each payload and returns the attachments to persist.
func (p *AttachmentProcessor) Process(ctx context.Context, payloads []dto.AttachmentPayload) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, len(payloads))
	for index, payload := range payloads {
		value := strings.TrimSpace(payload.Value)
		name := strings.TrimSpace(payload.Name)

		switch models.AttachmentType(payload.Type) {
		case models.AttachmentTypeLink:
			if err := p.validator.Var(value, "required,url"); err != nil {
				return nil, fmt.Errorf("%w: attachment %d is not a valid url", ErrInvalidAttachment, index)
			}
		case models.AttachmentTypeImage:
			stored, err := p.processImage(ctx, index, name, value)
			if err != nil {
				return nil, err
			}
			value = stored
		default:
			return nil, fmt.Errorf("%w: attachment %d has unsupported type %q", ErrInvalidAttachment, index, payload.Type)
		}

		attachments = append(attachments, models.Attachment{
			Type:  models.AttachmentType(payload.Type),
			Value: value,
			Name:  name,
		})
	}

	return attachments, nil
}

func (p *AttachmentProcessor) processImage(ctx context.Context, index int, name, value string) (string, error) {
	data, err := decodeImagePayload(value)
	if err != nil {
		return "", fmt.Errorf("%w: attachment %d is not base64 encoded", ErrInvalidAttachment, index)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: attachment %d is empty", ErrInvalidAttachment, index)
	}
	if p.maxBytes > 0 && len(data) > p.maxBytes {
		return "", fmt.Errorf("%w: attachment %d exceeds %d bytes", ErrInvalidAttachment, index, p.maxBytes)
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", fmt.Errorf("%w: attachment %d is %s, not an image", ErrInvalidAttachment, index, detected.String())
	}

	if p.uploader == nil {
		return value, nil
	}

	if name == "" {
		name = fmt.Sprintf("attachment-%d%s", index, detected.Extension())
	}

	url, err := p.uploader.Upload(ctx, name, bytes.NewReader(data))
	if err != nil {
		observability.AttachmentUploads().WithLabelValues("error").Inc()
		return "", fmt.Errorf("upload attachment %d: %w", index, err)
	}
	observability.AttachmentUploads().WithLabelValues("ok").Inc()
	p.logger.Debug().Str("mime", detected.String()).Int("bytes", len(data)).Msg("image attachment uploaded")

	return url, nil
}

// decodeImagePayload accepts either a data URL or a bare base64 string.
func decodeImagePayload(value string) ([]byte, error) {
	if strings.HasPrefix(value, "data:") {
		comma := strings.Index(value, ",")
		if comma < 0 || !strings.Contains(value[:comma], ";base64") {
			return nil, fmt.Errorf("malformed data url")
		}
		value = value[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return base64.RawStdEncoding.DecodeString(value)
	}
	return data, nil
}
