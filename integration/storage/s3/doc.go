// Package s3 implements the storage.Storage interface on Amazon S3 and
// S3-compatible services such as MinIO, DigitalOcean Spaces and Wasabi,
// using the AWS SDK v2.
//
// Basic usage:
//
//	store, err := s3.New(ctx, s3.Config{
//		Bucket: "my-app-uploads",
//		Region: "us-east-1",
//		// AccessKeyID and SecretKey are optional, the default AWS
//		// credential chain applies when they are empty.
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	file, err := store.Save(ctx, fileHeader, "avatars/1724572800_a1b2c3d4e5f60718.png")
//	if err != nil {
//		// storage sentinels apply here too, e.g. storage.ErrAccessDenied.
//	}
//	url := store.URL(file.RelativePath)
//
// MinIO and other path-style services:
//
//	store, err := s3.New(ctx, s3.Config{
//		Bucket:         "my-bucket",
//		Region:         "us-east-1",
//		AccessKeyID:    "minioadmin",
//		SecretKey:      "minioadmin",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	})
//
// A CDN or custom public URL in front of the bucket:
//
//	cfg.BaseURL = "https://cdn.example.com"
//
// Tests can replace the SDK client via WithS3Client and WithPaginatorFactory.
package s3
