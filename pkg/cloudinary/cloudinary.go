package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// AttachmentStore uploads assignment and submission images to Cloudinary.
type AttachmentStore struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs an AttachmentStore.
func New(cfg Config, logger zerolog.Logger) (*AttachmentStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &AttachmentStore{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload stores the image and returns its secure URL.
func (s *AttachmentStore) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     PublicID(name),
		ResourceType: "image",
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected attachment: %s", result.Error.Message)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("attachment uploaded")

	return result.SecureURL, nil
}

// PublicID derives a unique, URL-safe identifier from an attachment name.
func PublicID(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, base)

	base = strings.Trim(base, "-")
	if base == "" {
		base = "attachment"
	}

	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
}
