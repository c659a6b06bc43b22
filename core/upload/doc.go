// Package upload implements the image upload pipeline: destination path
// sanitization, file validation, unique filename generation and placement
// into a storage backend.
//
// The pipeline runs as a fixed sequence and stops at the first failure:
//
//	svc, err := upload.NewService(store, upload.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	result, err := svc.Upload(ctx, upload.Request{
//		Path:              "avatars/2024",
//		File:              fileHeader,
//		DeclaredSizeLimit: form.MaxFileSize,
//	})
//
// Failures carry sentinel identities such as ErrInvalidPath,
// ErrFileTooLarge or ErrExtensionMismatch, so transports can translate
// each outcome into its own status code and message.
//
// # Validation
//
// Accepted content types are JPEG, PNG, GIF and WebP, detected by sniffing
// the file content rather than trusting the client's Content-Type header.
// The filename extension must agree with the detected type ("jpg" and
// "jpeg" both match image/jpeg). Files above the configured size limit,
// 5MB unless overridden, are rejected.
//
// # Filenames
//
// Stored filenames are generated as "{unixTimestamp}_{16 hex chars}.{ext}"
// with a crypto/rand suffix, preserving the lowercased client extension.
// Client filenames never reach the filesystem.
package upload
