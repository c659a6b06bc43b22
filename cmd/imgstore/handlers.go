package main

import (
	"mime/multipart"
	"strings"

	"github.com/dmitrymomot/imgstore/core/binder"
	"github.com/dmitrymomot/imgstore/core/handler"
	"github.com/dmitrymomot/imgstore/core/response"
	"github.com/dmitrymomot/imgstore/core/router"
	"github.com/dmitrymomot/imgstore/core/upload"
)

// UploadRequest carries the multipart form fields of an upload.
type UploadRequest struct {
	Path        string                `form:"path"`
	Image       *multipart.FileHeader `file:"image"`
	MaxFileSize string                `form:"MAX_FILE_SIZE"`
}

// UploadResponse is the success envelope of the upload endpoint.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
	Filename string `json:"filename"`
}

func uploadHandler(svc *upload.Service) handler.HandlerFunc[*router.Context] {
	bind := binder.Form()
	return func(ctx *router.Context) handler.Response {
		var req UploadRequest
		if err := bind(ctx.Request(), &req); err != nil {
			return response.Error(upload.ClassifyFormError(err))
		}

		form := ctx.Request().MultipartForm
		if form == nil || len(form.Value["path"]) == 0 {
			return response.Error(upload.ErrMissingFields)
		}
		if req.Image == nil {
			// A file input left empty arrives as a bare form value with
			// no filename, not as a file part. The field is there, the
			// file is not.
			if len(form.Value["image"]) > 0 {
				return response.Error(upload.ErrNoFile)
			}
			return response.Error(upload.ErrMissingFields)
		}

		result, err := svc.Upload(ctx, upload.Request{
			Path:              req.Path,
			File:              req.Image,
			DeclaredSizeLimit: req.MaxFileSize,
		})
		if err != nil {
			return response.Error(err)
		}

		return response.JSON(UploadResponse{
			Success:  true,
			Message:  "Image uploaded successfully.",
			FilePath: result.FilePath,
			Filename: result.Filename,
		})
	}
}

// bucketRedirectHandler serves /uploads/* when files live in S3 by
// redirecting to the object URL, so the bucket or its CDN does the
// byte pushing.
func bucketRedirectHandler(urlFor func(string) string) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		rel := strings.Trim(ctx.Param("*"), "/")
		if rel == "" {
			return response.Error(router.ErrNotFound)
		}
		return response.Redirect(urlFor(rel))
	}
}
