// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client and backs the reconciliation report archive: every
// bundle save can be written as a JSON report and listed later. Both AWS S3 and
// self-hosted MinIO are supported.
//
// The Client interface keeps storage interactions mockable (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
