// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface. The identity service uses
// it to mirror every successfully fetched spreadsheet as CSV under SnapshotPrefix,
// so a restart (or an unreachable spreadsheet host) can fall back to the last good
// copy of a sheet.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
