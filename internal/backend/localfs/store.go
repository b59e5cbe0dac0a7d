// Package localfs is an object store on the local filesystem. Objects are
// written under Root/<bucket>/<path> and served below BaseURL.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/youruser/soulcard/internal/publish"
	"github.com/youruser/soulcard/internal/util"
)

type Store struct {
	Root    string
	BaseURL string
}

func New(root, baseURL string) *Store {
	return &Store{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve maps bucket/path to a file below Root/bucket, rejecting escapes.
func (s *Store) Resolve(bucket, path string) (string, error) {
	invalid := func(p string) bool {
		return p == "." || p == ".." || filepath.IsAbs(p) || strings.HasPrefix(p, ".."+string(filepath.Separator))
	}
	b := filepath.Clean(bucket)
	rel := filepath.Clean(filepath.FromSlash(path))
	if bucket == "" || invalid(b) || strings.ContainsRune(b, filepath.Separator) || invalid(rel) {
		return "", fmt.Errorf("localfs: invalid object path %q", bucket+"/"+path)
	}
	return filepath.Join(s.Root, b, rel), nil
}

func (s *Store) Upload(ctx context.Context, bucket, path string, data []byte, opts publish.UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := s.Resolve(bucket, path)
	if err != nil {
		return err
	}
	if opts.Upsert {
		if err := util.EnsureDir(filepath.Dir(file)); err != nil {
			return err
		}
		return os.WriteFile(file, data, 0o644)
	}
	err = util.WriteFileExclusive(file, data)
	if os.IsExist(err) {
		return fmt.Errorf("%w: %s/%s", publish.ErrObjectExists, bucket, path)
	}
	return err
}

// PublicURL returns the URL the web server serves bucket/path from. Each
// segment is escaped so serials containing '#', '?' or '%' still resolve.
func (s *Store) PublicURL(bucket, path string) string {
	return s.BaseURL + "/" + util.EscapeObjectPath(bucket, path)
}

var _ publish.ObjectStore = (*Store)(nil)
