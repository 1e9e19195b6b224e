package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

// SchemeS3 prefixes object storage locations: s3://bucket/key.
const SchemeS3 = "s3"

const markdownContentType = "text/markdown; charset=utf-8"

// Store reads and writes whole documents by location.
type Store interface {
	// Read returns the full content at location.
	Read(ctx context.Context, location string) ([]byte, error)
	// Write replaces the content at location. A failed write leaves the old content.
	Write(ctx context.Context, location string, data []byte) error
}

// Location is a parsed s3:// address.
type Location struct {
	Bucket string
	Key    string
}

// IsObjectLocation reports whether location addresses object storage.
func IsObjectLocation(location string) bool {
	return strings.HasPrefix(location, SchemeS3+"://")
}

// ParseLocation parses an s3://bucket/key location.
func ParseLocation(location string) (Location, error) {
	u, err := url.Parse(location)
	if err != nil {
		return Location{}, fmt.Errorf("invalid location %q: %w", location, err)
	}
	if u.Scheme != SchemeS3 {
		return Location{}, fmt.Errorf("invalid location %q: scheme must be %s", location, SchemeS3)
	}

	loc := Location{Bucket: u.Host, Key: strings.TrimPrefix(u.Path, "/")}
	if loc.Bucket == "" || loc.Key == "" {
		return Location{}, fmt.Errorf("invalid location %q: bucket and key are required", location)
	}
	return loc, nil
}

// FileStore keeps documents on a filesystem.
type FileStore struct {
	fs afero.Fs
}

// NewFileStore creates a store over fs. Use afero.NewOsFs for the real filesystem.
func NewFileStore(fs afero.Fs) *FileStore {
	return &FileStore{fs: fs}
}

// Read returns the content of the file at path.
func (s *FileStore) Read(_ context.Context, path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Write replaces the file at path through a temporary file in the same directory.
// The permissions of an existing file are kept.
func (s *FileStore) Write(_ context.Context, path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := s.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := s.fs.Chmod(tmpName, mode); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to set mode of %s: %w", path, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ObjectStore keeps documents in S3-compatible object storage.
type ObjectStore struct {
	client Client
}

// NewObjectStore creates a store over client.
func NewObjectStore(client Client) *ObjectStore {
	return &ObjectStore{client: client}
}

// Read downloads the object at an s3:// location.
func (s *ObjectStore) Read(ctx context.Context, location string) ([]byte, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, loc.Bucket, loc.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", location, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

// Write uploads data to an s3:// location in a single put.
func (s *ObjectStore) Write(ctx context.Context, location string, data []byte) error {
	loc, err := ParseLocation(location)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, loc.Bucket, loc.Key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: markdownContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", location, err)
	}
	return nil
}

// Router sends s3:// locations to object storage and everything else to files.
// The object store is only built when an s3:// location is used.
type Router struct {
	files Store

	objects    Store
	newObjects func() (Store, error)
}

// NewRouter creates a router over fs whose object store is configured by cfg.
func NewRouter(cfg Config, fs afero.Fs) *Router {
	return &Router{
		files: NewFileStore(fs),
		newObjects: func() (Store, error) {
			client, err := NewClient(cfg)
			if err != nil {
				return nil, err
			}
			return NewObjectStore(client), nil
		},
	}
}

// NewRouterWithStores creates a router over ready-made stores. objects may be nil.
func NewRouterWithStores(files, objects Store) *Router {
	return &Router{
		files: files,
		newObjects: func() (Store, error) {
			if objects == nil {
				return nil, errors.New("object storage is not configured")
			}
			return objects, nil
		},
	}
}

// Read implements Store.
func (r *Router) Read(ctx context.Context, location string) ([]byte, error) {
	store, err := r.route(location)
	if err != nil {
		return nil, err
	}
	return store.Read(ctx, location)
}

// Write implements Store.
func (r *Router) Write(ctx context.Context, location string, data []byte) error {
	store, err := r.route(location)
	if err != nil {
		return err
	}
	return store.Write(ctx, location, data)
}

func (r *Router) route(location string) (Store, error) {
	if !IsObjectLocation(location) {
		return r.files, nil
	}
	if r.objects == nil {
		objects, err := r.newObjects()
		if err != nil {
			return nil, fmt.Errorf("failed to open object storage for %s: %w", location, err)
		}
		r.objects = objects
	}
	return r.objects, nil
}
