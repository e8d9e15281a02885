package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"stocktake/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Issues reported by CheckStructure.
const (
	IssueBucketMissing = "bucket"
	IssuePrefixMissing = "prefix"
)

// CheckStructure returns what is missing for archiving into bucket under
// prefix: the bucket itself and the prefix folder.
func CheckStructure(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	missing := []string{}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	folder := folderKey(prefix)
	if !exists {
		missing = append(missing, IssueBucketMissing)
		if folder != "" {
			missing = append(missing, IssuePrefixMissing)
		}
		return missing, nil
	}
	if folder == "" {
		return missing, nil
	}

	opts := minio.ListObjectsOptions{
		Prefix:    folder,
		Recursive: false,
		MaxKeys:   1,
	}
	found := false
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
		}
		found = true
		break
	}
	if !found {
		missing = append(missing, IssuePrefixMissing)
	}
	return missing, nil
}

// FixStructure creates the bucket and the prefix folder named in missing.
func FixStructure(ctx context.Context, client storage.Client, bucket, prefix, region string, logger *zap.Logger, missing []string) error {
	for _, issue := range missing {
		switch issue {
		case IssueBucketMissing:
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
				logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
				return err
			}
			logger.Info("Created archive bucket", zap.String("bucket", bucket))
		case IssuePrefixMissing:
			folder := folderKey(prefix)
			_, err := client.PutObject(ctx, bucket, folder, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
			if err != nil {
				logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
				return err
			}
			logger.Info("Created archive folder", zap.String("folder", folder))
		default:
			return fmt.Errorf("unknown structure issue %q", issue)
		}
	}
	return nil
}

func folderKey(prefix string) string {
	prefix = strings.TrimPrefix(prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
