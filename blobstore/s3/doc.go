// Package s3 stores snapshots in Amazon S3.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "models/")
//
// Catalog layers a DynamoDB version pointer over any blobstore.BlobStore so
// that several writers can publish snapshots and readers always resolve the
// latest committed one:
//
//	catalog := s3.NewCatalog(store, dynamodb.NewFromConfig(cfg), "clusterkit-models", "s3://my-bucket/models")
//	_ = catalog.Put(ctx, "run-42.cks", frame)
//	blob, _ := catalog.Open(ctx, s3.LatestName)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads above the configured part size
//   - CRC32C integrity checks on single-part uploads
//   - Automatic pagination for listing
package s3
