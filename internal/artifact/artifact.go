// Package artifact persists generated source files to a directory or an
// object store bucket.
package artifact

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/filestore"
)

// Artifact is one generated file.
type Artifact struct {
	Table    string `json:"table"`
	Kind     string `json:"kind"`
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

// Sink receives generated artifacts.
type Sink interface {
	Write(ctx context.Context, a Artifact) error
}

// ContentType picks a MIME type from the file extension.
func ContentType(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".cs":
		return "text/x-csharp"
	case ".vue":
		return "text/x-vue"
	default:
		return "text/plain"
	}
}

func checkName(a Artifact) error {
	if a.FileName == "" || strings.ContainsAny(a.FileName, `/\`) || a.FileName == "." || a.FileName == ".." {
		return errs.InvalidArgument(fmt.Sprintf("invalid artifact file name %q", a.FileName))
	}
	return nil
}

// DirSink writes each artifact to Dir/FileName.
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink rooted at dir; the directory is created on first write.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

func (s *DirSink) Write(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(errs.ErrKindTimeout, "write "+a.FileName, err)
	}
	if err := checkName(a); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errs.Wrap(errs.ErrKindPermissionDenied, "create output dir "+s.Dir, err)
	}
	dst := filepath.Join(s.Dir, a.FileName)
	if err := os.WriteFile(dst, []byte(a.Content), 0o644); err != nil {
		return errs.Wrap(errs.ErrKindUnknown, "write "+dst, err)
	}
	return nil
}

// StoreSink uploads each artifact to Bucket under Prefix.
type StoreSink struct {
	store  filestore.Store
	bucket string
	prefix string
}

// NewStoreSink ensures bucket exists and returns a sink writing
// {prefix}{FileName} objects into it.
func NewStoreSink(ctx context.Context, store filestore.Store, bucket, prefix string) (*StoreSink, error) {
	if bucket == "" {
		return nil, errs.InvalidArgument("output bucket is required")
	}
	if err := store.EnsureBucket(ctx, bucket); err != nil {
		return nil, err
	}
	return &StoreSink{store: store, bucket: bucket, prefix: prefix}, nil
}

func (s *StoreSink) Write(ctx context.Context, a Artifact) error {
	if err := checkName(a); err != nil {
		return err
	}
	key := s.prefix + a.FileName
	_, err := s.store.PutObject(ctx, s.bucket, key, bytes.NewReader([]byte(a.Content)), int64(len(a.Content)), filestore.PutOptions{
		ContentType: ContentType(a.FileName),
		Metadata: map[string]string{
			"table": a.Table,
			"kind":  a.Kind,
		},
	})
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// WriteAll writes every artifact, continuing past failures. The returned
// error aggregates all failures.
func WriteAll(ctx context.Context, sink Sink, artifacts []Artifact) error {
	var result *multierror.Error
	for _, a := range artifacts {
		if err := sink.Write(ctx, a); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", a.FileName, err))
		}
	}
	return result.ErrorOrNil()
}
