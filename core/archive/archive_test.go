package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stocktake/core/storage"
	"stocktake/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() storage.Config {
	return storage.Config{Bucket: "stocktake", Prefix: "snapshots", Region: "eu-west-1"}
}

func objectsChan(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		ch <- o
	}
	close(ch)
	return ch
}

func TestNew_NormalizesPrefix(t *testing.T) {
	a := New(new(mocks.Client), testConfig(), zap.NewNop())
	assert.Equal(t, "snapshots/", a.Prefix())

	cfg := testConfig()
	cfg.Prefix = ""
	assert.Equal(t, "", New(new(mocks.Client), cfg, nil).Prefix())
}

func TestArchiver_EnsureBucket(t *testing.T) {
	t.Run("Existing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "stocktake").Return(true, nil)

		assert.NoError(t, New(client, testConfig(), nil).EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "stocktake").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "stocktake", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		assert.NoError(t, New(client, testConfig(), nil).EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})

	t.Run("Unreachable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "stocktake").Return(false, errors.New("connection refused"))

		err := New(client, testConfig(), nil).EnsureBucket(context.Background())
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestArchiver_Archive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocktake_20240501_090000_abcd1234.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"reelData":[],"fileID":{}}`), 0o644))

	client := new(mocks.Client)
	client.On("FPutObject", mock.Anything, "stocktake", "snapshots/stocktake_20240501_090000_abcd1234.json",
		path, mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "application/json"
		})).Return(minio.UploadInfo{Size: 27}, nil)

	require.NoError(t, New(client, testConfig(), nil).Archive(context.Background(), path))
	client.AssertExpectations(t)

	err := New(client, testConfig(), nil).Archive(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestArchiver_List(t *testing.T) {
	older := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "stocktake", minio.ListObjectsOptions{Prefix: "snapshots/", Recursive: true}).
		Return(objectsChan(
			minio.ObjectInfo{Key: "snapshots/", LastModified: older},
			minio.ObjectInfo{Key: "snapshots/a.json", Size: 10, LastModified: older},
			minio.ObjectInfo{Key: "snapshots/b.json", Size: 20, LastModified: newer},
		))

	objects, err := New(client, testConfig(), nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "b.json", objects[0].Name)
	assert.Equal(t, "a.json", objects[1].Name)

	failing := new(mocks.Client)
	failing.On("ListObjects", mock.Anything, "stocktake", mock.Anything).
		Return(objectsChan(minio.ObjectInfo{Err: errors.New("access denied")}))
	_, err = New(failing, testConfig(), nil).List(context.Background())
	assert.ErrorContains(t, err, "access denied")
}

func TestArchiver_Fetch(t *testing.T) {
	dest := t.TempDir()
	client := &mocks.Client{Content: []byte(`{"reelData":[],"fileID":{}}`)}
	client.On("FGetObject", mock.Anything, "stocktake", "snapshots/a.json", filepath.Join(dest, "a.json"), mock.Anything).
		Return(nil)

	a := New(client, testConfig(), nil)
	path, err := a.Fetch(context.Background(), "a.json", dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "a.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"reelData":[],"fileID":{}}`, string(data))

	for _, bad := range []string{"", "../a.json", "x/a.json"} {
		_, err := a.Fetch(context.Background(), bad, dest)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}

	missing := new(mocks.Client)
	missing.On("FGetObject", mock.Anything, "stocktake", "snapshots/gone.json", mock.Anything, mock.Anything).
		Return(errors.New("The specified key does not exist."))
	_, err = New(missing, testConfig(), nil).Fetch(context.Background(), "gone.json", dest)
	assert.ErrorContains(t, err, "does not exist")
}

func TestArchiver_Prune(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "stocktake", mock.Anything).Return(objectsChan(
		minio.ObjectInfo{Key: "snapshots/a.json", LastModified: base},
		minio.ObjectInfo{Key: "snapshots/b.json", LastModified: base.Add(time.Minute)},
		minio.ObjectInfo{Key: "snapshots/c.json", LastModified: base.Add(2 * time.Minute)},
	))
	errCh := make(chan minio.RemoveObjectError, 1)
	errCh <- minio.RemoveObjectError{ObjectName: "snapshots/a.json", Err: errors.New("locked")}
	close(errCh)
	client.On("RemoveObjects", mock.Anything, "stocktake", mock.Anything, mock.Anything).
		Return((<-chan minio.RemoveObjectError)(errCh))

	removed, err := New(client, testConfig(), nil).Prune(context.Background(), 1)
	assert.Equal(t, []string{"snapshots/b.json"}, removed)
	assert.ErrorContains(t, err, "locked")

	none, err := New(client, testConfig(), nil).Prune(context.Background(), 0)
	assert.NoError(t, err)
	assert.Empty(t, none)
}
