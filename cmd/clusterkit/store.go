package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/clusterkit/blobstore"
	"github.com/hupe1980/clusterkit/blobstore/minio"
	"github.com/hupe1980/clusterkit/blobstore/s3"
)

// openStore builds the blob store described by sc.
func openStore(ctx context.Context, sc StoreConfig) (blobstore.BlobStore, error) {
	switch strings.ToLower(sc.Kind) {
	case "", "local":
		root := sc.Root
		if root == "" {
			root = "."
		}
		return blobstore.NewLocalStore(root), nil
	case "s3":
		if sc.Bucket == "" {
			return nil, fmt.Errorf("s3 store: bucket is required")
		}
		var loadOpts []func(*awsconfig.LoadOptions) error
		if sc.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(sc.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
			if sc.Endpoint != "" {
				o.BaseEndpoint = aws.String(sc.Endpoint)
				o.UsePathStyle = true
			}
		})
		store := s3.NewStore(client, sc.Bucket, sc.Prefix)
		if sc.Table == "" {
			return store, nil
		}
		baseURI := "s3://" + sc.Bucket + "/" + strings.Trim(sc.Prefix, "/")
		return s3.NewCatalog(store, dynamodb.NewFromConfig(awsCfg), sc.Table, baseURI), nil
	case "minio":
		if sc.Bucket == "" {
			return nil, fmt.Errorf("minio store: bucket is required")
		}
		endpoint := sc.Endpoint
		if endpoint == "" {
			endpoint = "localhost:9000"
		}
		accessKey := firstNonEmpty(sc.AccessKey, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_ROOT_USER"))
		secretKey := firstNonEmpty(sc.SecretKey, os.Getenv("MINIO_SECRET_KEY"), os.Getenv("MINIO_ROOT_PASSWORD"))
		client, err := miniogo.New(endpoint, &miniogo.Options{
			Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
			Secure: sc.Secure,
			Region: sc.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("creating minio client: %w", err)
		}
		return minio.NewStore(client, sc.Bucket, sc.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store %q", sc.Kind)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
