// Package storage provides file storage for uploaded content behind a small
// Storage interface, with a local filesystem backend as the default.
//
// The local backend writes each file to a temporary file in the destination
// directory and renames it into place, so readers never observe a partially
// written file. Parent directories are created on demand.
//
// # Usage
//
//	store, err := storage.New(storage.Config{
//		Directory:    "./uploads",
//		PublicPrefix: "uploads",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	file, err := store.Save(ctx, fileHeader, "avatars/1724572800_a1b2c3d4e5f60718.png")
//	if err != nil {
//		// Match with errors.Is against the package sentinels, e.g.
//		// storage.ErrFailedToCreateDir or storage.ErrFailedToMoveFile.
//	}
//	url := store.URL(file.RelativePath)
//
// Remote backends implement the same Storage interface, see the s3
// integration package.
package storage
