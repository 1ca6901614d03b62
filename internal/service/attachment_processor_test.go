package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
)

func TestAttachmentProcessorUploadsImages(t *testing.T) {
	uploader := &stubUploader{url: "https://cdn.example.com/dot.png"}
	processor := NewAttachmentProcessor(NewValidator(), uploader, 1024, testLogger())

	attachments, err := processor.Process(context.Background(), []dto.AttachmentPayload{
		{Type: "image", Value: tinyPNG},
		{Type: "link", Value: "https://example.com", Name: "Reference"},
	})
	require.NoError(t, err)
	require.Equal(t, []models.Attachment{
		{Type: models.AttachmentTypeImage, Value: "https://cdn.example.com/dot.png"},
		{Type: models.AttachmentTypeLink, Value: "https://example.com", Name: "Reference"},
	}, attachments)
	require.Equal(t, []string{"attachment-0.png"}, uploader.names)
}

func TestAttachmentProcessorRejectsBadImages(t *testing.T) {
	processor := NewAttachmentProcessor(NewValidator(), nil, 16, testLogger())

	cases := map[string]dto.AttachmentPayload{
		"not base64":   {Type: "image", Value: "%%%"},
		"too large":    {Type: "image", Value: tinyPNG},
		"broken data":  {Type: "image", Value: "data:image/png," + tinyPNG},
		"unknown type": {Type: "video", Value: "https://example.com"},
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := processor.Process(context.Background(), []dto.AttachmentPayload{payload})
			require.ErrorIs(t, err, ErrInvalidAttachment)
		})
	}
}
