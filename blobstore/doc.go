// Package blobstore abstracts where model snapshots live.
//
// Snapshots are immutable blobs addressed by name. Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic writes, mmap reads
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - s3.Catalog: any store plus a DynamoDB latest-version pointer
//   - minio.Store: MinIO and other S3-compatible servers
package blobstore
