package scaffold

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/filestore"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// FileName is the resource name of a kind inside any source: "Controller.tmpl".
func FileName(kind Kind) string {
	return string(kind) + ".tmpl"
}

// fsSource reads {Kind}.tmpl files from a file system.
type fsSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource reads templates from the root of fsys.
func NewFSSource(fsys fs.FS) Source {
	return &fsSource{fsys: fsys, dir: "."}
}

// EmbeddedSource serves the templates compiled into the binary.
func EmbeddedSource() Source {
	return &fsSource{fsys: defaultTemplates, dir: "templates"}
}

// NewDirSource reads templates from a directory on disk.
func NewDirSource(dir string) Source {
	return NewFSSource(os.DirFS(dir))
}

func (s *fsSource) Load(ctx context.Context, kind Kind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(errs.ErrKindTimeout, "load template", err)
	}
	data, err := fs.ReadFile(s.fsys, path.Join(s.dir, FileName(kind)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errs.Wrap(errs.ErrKindNotFound, fmt.Sprintf("template %s not found", kind), err)
		}
		return "", errs.Wrap(errs.ErrKindUnknown, fmt.Sprintf("read template %s", kind), err)
	}
	return string(data), nil
}

// MapSource serves templates from memory. Missing kinds are NotFound.
type MapSource map[Kind]string

func (m MapSource) Load(_ context.Context, kind Kind) (string, error) {
	tmpl, ok := m[kind]
	if !ok {
		return "", errs.New(errs.ErrKindNotFound, fmt.Sprintf("template %s not found", kind))
	}
	return tmpl, nil
}

// ObjectSource reads {prefix}{Kind}.tmpl objects from an object store bucket.
type ObjectSource struct {
	store  filestore.Store
	bucket string
	prefix string
}

// NewObjectSource reads templates from bucket under prefix, e.g. "scaffold/".
func NewObjectSource(store filestore.Store, bucket, prefix string) *ObjectSource {
	return &ObjectSource{store: store, bucket: bucket, prefix: prefix}
}

func (s *ObjectSource) Load(ctx context.Context, kind Kind) (string, error) {
	key := s.prefix + FileName(kind)
	obj, err := s.store.GetObject(ctx, s.bucket, key)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", kind, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", errs.Wrap(errs.ErrKindConnectionFailed, "read template object "+key, err)
	}
	return string(data), nil
}

// Available lists the kinds that have an object under the prefix.
func (s *ObjectSource) Available(ctx context.Context) ([]Kind, error) {
	objs, err := s.store.ListObjects(ctx, s.bucket, filestore.ListOptions{Prefix: s.prefix, Recursive: true})
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(objs))
	for _, o := range objs {
		present[o.Key] = true
	}

	var kinds []Kind
	for _, k := range Kinds() {
		if present[s.prefix+FileName(k)] {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}
