package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	saveFilePrefix = "stocktake_"
	saveFileSuffix = ".json"
	lockFileName   = ".stocktake.lock"
)

// ErrSaveDirLocked is returned when another process holds the save directory.
var ErrSaveDirLocked = errors.New("save directory is in use by another stocktake")

// DirStore keeps save files in a single directory.
type DirStore struct {
	dir string
	now func() time.Time
}

// NewDirStore creates the directory if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &DirStore{dir: dir, now: time.Now}, nil
}

// Dir returns the save directory.
func (d *DirStore) Dir() string {
	return d.dir
}

// NewPath returns stocktake_<timestamp>_<id>.json inside the directory.
func (d *DirStore) NewPath() (string, error) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("%s%s_%s%s", saveFilePrefix, d.now().Format("20060102_150405"), id, saveFileSuffix)
	return filepath.Join(d.dir, name), nil
}

// Write replaces path atomically through a temporary file in the same directory.
func (d *DirStore) Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Read returns the contents of path.
func (d *DirStore) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// SaveFile describes one save file on disk.
type SaveFile struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// List returns the save files, most recently modified first.
func (d *DirStore) List() ([]SaveFile, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}
	var files []SaveFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, saveFilePrefix) || !strings.HasSuffix(name, saveFileSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		files = append(files, SaveFile{
			Path:    filepath.Join(d.dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name > files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// Latest returns the most recently modified save file.
func (d *DirStore) Latest() (SaveFile, bool, error) {
	files, err := d.List()
	if err != nil || len(files) == 0 {
		return SaveFile{}, false, err
	}
	return files[0], true, nil
}

// Prune removes all but the keep most recently modified save files.
// keep <= 0 keeps everything.
func (d *DirStore) Prune(keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}
	files, err := d.List()
	if err != nil {
		return nil, err
	}
	if len(files) <= keep {
		return nil, nil
	}
	var removed []string
	var errs []error
	for _, f := range files[keep:] {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, f.Path)
	}
	return removed, errors.Join(errs...)
}

// Lock takes an exclusive lock on the directory so two stocktakes cannot
// rotate and prune the same files. The returned func releases it.
func (d *DirStore) Lock() (func() error, error) {
	lock := flock.New(filepath.Join(d.dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock save directory: %w", err)
	}
	if !locked {
		return nil, ErrSaveDirLocked
	}
	return lock.Unlock, nil
}
