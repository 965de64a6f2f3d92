package run

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/snapmeans/blobstore"
	miniostore "github.com/hupe1980/snapmeans/blobstore/minio"
	s3store "github.com/hupe1980/snapmeans/blobstore/s3"
	"github.com/hupe1980/snapmeans/internal/config"
)

// openStore builds the blob store datasets are read from and reports are
// written to.
func openStore(ctx context.Context, cfg config.StorageConfig) (blobstore.Store, error) {
	switch cfg.Type {
	case config.StorageLocal, "":
		root := cfg.RootPath
		if root == "" {
			root = "."
		}
		return blobstore.NewLocalStore(root), nil

	case config.StorageMinIO:
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, cfg.Bucket, cfg.Prefix), nil

	case config.StorageS3:
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Region))
		}
		if cfg.AccessKey != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
				o.UsePathStyle = true
			}
		})
		return s3store.NewStore(client, cfg.Bucket, cfg.Prefix), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
