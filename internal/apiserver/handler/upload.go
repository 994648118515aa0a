package handler

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arachchispices/spicestore/internal/common/config"
	"github.com/arachchispices/spicestore/internal/common/errorx"
)

// Uploads stores multipart image uploads on disk under random names.
type Uploads struct {
	dir     string
	maxSize int64
}

// NewUploads creates the upload directory if needed.
func NewUploads(cfg *config.UploadConfig) (*Uploads, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, err
	}
	return &Uploads{dir: cfg.Dir, maxSize: cfg.MaxSize}, nil
}

// Save stores the uploaded file from the named form field and returns its
// public URL path. It returns "" when the field is absent, and
// ErrUnsupportedImage for non-image content or oversized files.
func (u *Uploads) Save(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", errorx.ErrInvalidInput.WithMessage(err.Error())
	}

	if file.Size > u.maxSize {
		return "", errorx.ErrUnsupportedImage
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", errorx.ErrUnsupportedImage
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(u.dir, name)); err != nil {
		return "", err
	}
	return path.Join("/uploads", name), nil
}
