package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"stocktake/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrInvalidName is returned for object names that are not plain file names.
var ErrInvalidName = errors.New("invalid archive object name")

// Object is one archived save file.
type Object struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archiver uploads save files under a prefix of one bucket.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	region string
	logger *zap.Logger
}

// New creates an archiver for the bucket and prefix of cfg.
func New(client storage.Client, cfg storage.Config, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := strings.TrimPrefix(cfg.Prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: prefix,
		region: cfg.Region,
		logger: logger.Named("archive"),
	}
}

// Bucket returns the target bucket name.
func (a *Archiver) Bucket() string {
	return a.bucket
}

// Prefix returns the object prefix, with a trailing slash when set.
func (a *Archiver) Prefix() string {
	return a.prefix
}

// EnsureBucket creates the bucket when it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	a.logger.Info("Created archive bucket", zap.String("bucket", a.bucket))
	return nil
}

// Archive uploads the file at localPath as <prefix><base name>.
func (a *Archiver) Archive(ctx context.Context, localPath string) error {
	if _, err := os.Stat(localPath); err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	key := a.prefix + filepath.Base(localPath)
	info, err := a.client.FPutObject(ctx, a.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	a.logger.Info("Archived save file",
		zap.String("bucket", a.bucket),
		zap.String("key", key),
		zap.Int64("size", info.Size),
	)
	return nil
}

// List returns archived objects, newest first.
func (a *Archiver) List(ctx context.Context) ([]Object, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    a.prefix,
		Recursive: true,
	}
	var objects []Object
	for obj := range a.client.ListObjects(ctx, a.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		objects = append(objects, Object{
			Key:          obj.Key,
			Name:         path.Base(obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	sort.Slice(objects, func(i, j int) bool {
		if objects[i].LastModified.Equal(objects[j].LastModified) {
			return objects[i].Key > objects[j].Key
		}
		return objects[i].LastModified.After(objects[j].LastModified)
	})
	return objects, nil
}

// Fetch downloads the archived file name into destDir and returns the local path.
func (a *Archiver) Fetch(ctx context.Context, name, destDir string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	key := a.prefix + name

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(destDir, name)
	if err := a.client.FGetObject(ctx, a.bucket, key, dest, minio.GetObjectOptions{}); err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", key, err)
	}
	a.logger.Info("Fetched archived save file", zap.String("key", key), zap.String("path", dest))
	return dest, nil
}

// Prune removes all but the keep newest archived objects. keep <= 0 keeps all.
func (a *Archiver) Prune(ctx context.Context, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}
	objects, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(objects) <= keep {
		return nil, nil
	}

	stale := objects[keep:]
	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		objectsCh <- minio.ObjectInfo{Key: obj.Key}
	}
	close(objectsCh)

	failed := make(map[string]error)
	for rerr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed[rerr.ObjectName] = rerr.Err
	}

	var removed []string
	var errs []error
	for _, obj := range stale {
		if err, ok := failed[obj.Key]; ok {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", obj.Key, err))
			continue
		}
		removed = append(removed, obj.Key)
	}
	if len(removed) > 0 {
		a.logger.Info("Pruned archive", zap.Int("removed", len(removed)))
	}
	return removed, errors.Join(errs...)
}
