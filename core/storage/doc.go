// Package storage configures the MinIO client used for the off-site snapshot
// archive.
//
// The Client interface exposes only the calls the archive makes. Save files
// move with FPutObject and FGetObject, so downloads land through a part file
// and never leave a half-written save behind. Archive and integrity code are
// tested with the testify mock in core/storage/mocks.
// Any S3 compatible service works, AWS S3 included.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
