package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/imgstore/core/logger"
	"github.com/dmitrymomot/imgstore/core/response"
	"github.com/dmitrymomot/imgstore/core/router"
	"github.com/dmitrymomot/imgstore/core/storage"
	"github.com/dmitrymomot/imgstore/core/upload"
	"github.com/dmitrymomot/imgstore/middleware"
)

// errorResponse is the envelope every failed request is rendered with.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// errorTable maps the sentinels of the upload pipeline onto the HTTP
// status and client-facing message of the API contract. The messages
// are part of the public contract and must not be reworded.
var errorTable = []struct {
	sentinel error
	status   int
	message  string
}{
	{upload.ErrMissingFields, http.StatusBadRequest, "Missing required fields. Both image and path are required."},
	{upload.ErrSizeExceedsServerLimit, http.StatusBadRequest, "File exceeds upload_max_filesize directive in php.ini"},
	{upload.ErrSizeExceedsFormLimit, http.StatusBadRequest, "File exceeds MAX_FILE_SIZE directive in HTML form"},
	{upload.ErrPartialUpload, http.StatusBadRequest, "File was only partially uploaded"},
	{upload.ErrNoFile, http.StatusBadRequest, "No file was uploaded"},
	{upload.ErrFileTooLarge, http.StatusBadRequest, "File size exceeds maximum allowed size of 5MB."},
	{upload.ErrInvalidFileType, http.StatusBadRequest, "Invalid file type. Only image files (JPEG, PNG, GIF, WebP) are allowed."},
	{upload.ErrInvalidPath, http.StatusBadRequest, "Invalid path string. Path must contain only alphanumeric characters, slashes, hyphens, and underscores."},
	{upload.ErrExtensionMismatch, http.StatusBadRequest, "File extension does not match file type."},
	{storage.ErrFailedToCreateDir, http.StatusInternalServerError, "Failed to create directory structure."},
	{storage.ErrFailedToMoveFile, http.StatusInternalServerError, "Failed to move uploaded file to destination."},
	{router.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method not allowed. Only POST requests are accepted."},
	{router.ErrNotFound, http.StatusNotFound, "Not found."},
}

// errorHandler renders every routing and handler error as the JSON
// envelope of the API contract. Errors without a table entry or an
// HTTPError status collapse to a generic 500, with the cause kept in
// the server log only.
func errorHandler(log *slog.Logger) func(ctx *router.Context, err error) {
	return func(ctx *router.Context, err error) {
		status := http.StatusInternalServerError
		message := "Internal server error."

		matched := false
		for _, e := range errorTable {
			if errors.Is(err, e.sentinel) {
				status, message = e.status, e.message
				matched = true
				break
			}
		}

		var httpErr response.HTTPError
		if !matched && errors.As(err, &httpErr) {
			status = httpErr.Status
			message = httpErr.Message
			if message == "" {
				message = http.StatusText(status)
			}
		}

		if status >= http.StatusInternalServerError {
			attrs := []any{
				logger.Component("http"),
				logger.Method(ctx.Request().Method),
				logger.Path(ctx.Request().URL.Path),
				logger.Error(err),
			}
			if id, ok := middleware.GetRequestID(ctx); ok {
				attrs = append(attrs, logger.RequestID(id))
			}
			log.ErrorContext(ctx, "Request failed", attrs...)
		}

		response.Render(ctx, response.JSONWithStatus(errorResponse{Error: message}, status))
	}
}
