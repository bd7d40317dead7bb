package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Raghugowd/Internx-sub001/internal/config"
	"github.com/Raghugowd/Internx-sub001/internal/model"
	"github.com/google/uuid"
)

// Sentinel errors for attachment handling.
var (
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrAttachmentTooLarge   = errors.New("attachment too large")
	ErrAttachmentUnreadable = errors.New("attachment could not be decoded")
)

// AttachmentKind selects the MIME allowlist for an upload.
type AttachmentKind string

const (
	AttachmentResume AttachmentKind = "resume"
	AttachmentPhoto  AttachmentKind = "photo"
)

// Allowed MIME types per attachment kind, mapped to the stored extension.
var allowedMIMETypes = map[AttachmentKind]map[string]string{
	AttachmentResume: {
		"application/pdf":    ".pdf",
		"application/msword": ".doc",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	},
	AttachmentPhoto: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	},
}

// AttachmentService decodes base64 attachment payloads and stores them on
// local disk under UUID filenames.
type AttachmentService struct {
	cfg *config.Config
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(cfg *config.Config) *AttachmentService {
	return &AttachmentService{cfg: cfg}
}

// Validate decodes the payload and checks its declared type and decoded size
// without writing anything. Returns the decoded bytes for a later Save.
func (s *AttachmentService) Validate(att *model.AttachmentPayload, kind AttachmentKind) ([]byte, error) {
	allowed := allowedMIMETypes[kind]
	if _, ok := allowed[att.ContentType]; !ok {
		return nil, fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, att.ContentType, strings.Join(allowedTypes(kind), ", "))
	}

	data, err := base64.StdEncoding.DecodeString(att.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAttachmentUnreadable, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty content", ErrAttachmentUnreadable)
	}
	if int64(len(data)) > s.cfg.MaxAttachmentBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)",
			ErrAttachmentTooLarge, len(data), s.cfg.MaxAttachmentBytes)
	}
	return data, nil
}

// Save writes previously validated bytes to the upload directory and returns
// the relative URL path of the stored file.
func (s *AttachmentService) Save(data []byte, contentType string, kind AttachmentKind) (string, error) {
	ext := allowedMIMETypes[kind][contentType]

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	destPath := filepath.Join(s.cfg.UploadDir, filename)

	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/uploads/" + filename, nil
}

// Remove deletes a stored attachment by its URL path. Used to roll back
// files when the enclosing registration fails after they were written.
func (s *AttachmentService) Remove(url string) error {
	name := strings.TrimPrefix(url, "/uploads/")
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid attachment url: %s", url)
	}
	return os.Remove(filepath.Join(s.cfg.UploadDir, name))
}

func allowedTypes(kind AttachmentKind) []string {
	types := make([]string, 0, len(allowedMIMETypes[kind]))
	for t := range allowedMIMETypes[kind] {
		types = append(types, t)
	}
	return types
}
