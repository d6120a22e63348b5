package router

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/codewithraj/blog/internal/pkg/goerror"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetParamInt64 reads a path parameter as int64.
func (r *Request) GetParamInt64(key string) (int64, error) {
	value, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("param must integer value")
	}
	return value, nil
}

// GetQuery reads a trimmed query string value.
func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetForm reads a trimmed form field from a POSTed body.
func (r *Request) GetForm(key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

const maxUploadBytes = 10 << 20 // 10MB

// MultipartFile returns the uploaded file for the form field, parsing the
// multipart body if needed. A missing or empty file field is not an error;
// it returns (nil, nil, nil) so optional uploads stay optional.
func (r *Request) MultipartFile(name string) (multipart.File, *multipart.FileHeader, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return nil, nil, nil
	}

	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, nil, goerror.NewInvalidFormat()
		}
	}

	file, header, err := r.Request.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, goerror.NewInvalidFormat()
	}
	if header.Filename == "" {
		_ = file.Close() //nolint:errcheck // empty upload
		return nil, nil, nil
	}

	return file, header, nil
}
