// Package storage reads and writes whole markdown documents.
//
// Documents live either on a filesystem (through afero, so tests can run on an
// in-memory filesystem) or in S3-compatible object storage (through the MinIO Go
// client). A Router picks the backend from the location: "s3://bucket/key"
// addresses object storage, anything else is a file path.
//
// # Client Interface
//
// The Client interface abstracts the object storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Writes
//
// File writes go through a temporary file in the target directory followed by a
// rename, so a failed run never leaves a half-written document. Object writes are
// a single PutObject call.
//
// # Usage
//
//	store := storage.NewRouter(cfg.Storage, afero.NewOsFs())
//	data, err := store.Read(ctx, "docs/roles.md")
//	err = store.Write(ctx, "s3://handbook/roles.md", data)
package storage
