// Package blobstore provides the storage abstraction datasets are read from
// and reports are written to.
//
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem rooted at a directory
//   - MemoryStore: in-memory, for tests
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx, name) (io.ReadCloser, error)
//	    Put(ctx, name, data) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
