// Package binder maps HTTP request data onto Go structs. It focuses on HTML
// form submissions: URL-encoded bodies and multipart/form-data uploads, with
// struct-tag driven binding for both field values and uploaded files.
//
// # Usage
//
//	type UploadRequest struct {
//		Path        string                `form:"path"`
//		MaxFileSize string                `form:"MAX_FILE_SIZE"`
//		Image       *multipart.FileHeader `file:"image"`
//	}
//
//	var req UploadRequest
//	if err := binder.Form()(r, &req); err != nil {
//		// handle binding failure
//	}
//
// # Error Matching
//
// Parse failures wrap ErrFailedToParseForm. When the body was cut short or a
// size limit fired, the originating error is joined rather than flattened, so
// callers can classify with errors.Is/errors.As:
//
//	var maxBytesErr *http.MaxBytesError
//	switch {
//	case errors.As(err, &maxBytesErr):
//		// request exceeded the server-side body cap
//	case errors.Is(err, io.ErrUnexpectedEOF):
//		// client disconnected mid-upload
//	case errors.Is(err, multipart.ErrMessageTooLarge):
//		// non-file values exceeded the in-memory form limit
//	}
//
// # Security
//
// Bound strings are stripped of NUL bytes, CR/LF sequences, and non-graphic
// control characters. Uploaded filenames are reduced to their base name so
// client-supplied paths never reach storage code. Multipart boundaries are
// validated before parsing.
package binder
