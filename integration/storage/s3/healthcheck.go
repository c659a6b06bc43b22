package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
)

// Healthcheck returns a readiness probe that verifies the bucket is
// reachable with a minimal list request.
func Healthcheck(s *S3Storage) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.client.ListObjectsV2(ctx, &s3aws.ListObjectsV2Input{
			Bucket:  aws.String(s.bucket),
			MaxKeys: aws.Int32(1),
		})
		return classifyS3Error(err, "healthcheck")
	}
}
