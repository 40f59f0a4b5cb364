// Package imageupload turns uploaded image files into data URLs, which the
// backend accepts wherever it takes a remote image URL.
package imageupload

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

// MaxFileBytes bounds one uploaded image.
const MaxFileBytes = 8 << 20

// MaxFiles bounds a bulk upload.
const MaxFiles = 20

var (
	// ErrTooLarge reports a file above MaxFileBytes.
	ErrTooLarge = apperrors.EK(apperrors.KindInvalidInput, "core.validation.file_too_large", "image file is too large")
	// ErrNotImage reports a file whose content is not an image.
	ErrNotImage = apperrors.EK(apperrors.KindInvalidInput, "core.validation.file_not_image", "file is not an image")
	// ErrTooMany reports a bulk upload above MaxFiles.
	ErrTooMany = apperrors.EK(apperrors.KindInvalidInput, "core.validation.too_many_files", "too many files")
)

// ParseForm parses urlencoded and multipart bodies alike.
func ParseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return r.ParseMultipartForm(MaxFileBytes)
	}
	return r.ParseForm()
}

// DataURL returns the file posted under field as a data URL, or "" when no
// file was sent.
func DataURL(r *http.Request, field string) (string, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return "", nil
	}
	return encode(r.MultipartForm.File[field][0])
}

// DataURLs returns every file posted under field as a data URL.
func DataURLs(r *http.Request, field string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) > MaxFiles {
		return nil, ErrTooMany
	}
	out := make([]string, 0, len(headers))
	for _, header := range headers {
		dataURL, err := encode(header)
		if err != nil {
			return nil, err
		}
		out = append(out, dataURL)
	}
	return out, nil
}

// FileNames returns the client-side names of the files posted under field.
func FileNames(r *http.Request, field string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	var out []string
	for _, header := range r.MultipartForm.File[field] {
		out = append(out, header.Filename)
	}
	return out
}

func encode(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxFileBytes {
		return "", ErrTooLarge
	}
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, MaxFileBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxFileBytes {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", ErrNotImage
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsUploadError reports whether err came from checking an uploaded file.
func IsUploadError(err error) bool {
	return errors.Is(err, ErrTooLarge) || errors.Is(err, ErrNotImage) || errors.Is(err, ErrTooMany)
}
