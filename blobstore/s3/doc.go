// Package s3 provides an Amazon S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-1"))
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "datasets/")
//
// Puts go through the s3/manager uploader, which switches to multipart
// uploads for large reports automatically.
package s3
