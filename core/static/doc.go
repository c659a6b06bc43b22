// Package static provides HTTP handlers for serving files from disk and
// from embedded filesystems. Directory listing is disabled in both cases,
// a directory only resolves when it contains an index.html.
//
// Dir serves a directory from disk, used here to expose stored uploads
// read-only:
//
//	r.Get("/uploads/*", static.Dir[*router.Context](
//		"./uploads",
//		static.WithStripPrefix("/uploads"),
//	))
//
// FS serves an fs.FS, typically assets embedded with the embed directive:
//
//	//go:embed web/*
//	var webFS embed.FS
//
//	r.Get("/", static.FS[*router.Context](webFS, static.WithSubFS("web")))
//
// Both handlers delegate to http.FileServer, so range requests and
// conditional requests work as usual.
package static
