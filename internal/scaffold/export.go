package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/koustreak/dbscaffold/internal/errs"
)

// DefaultTemplate returns the embedded template text for kind.
func DefaultTemplate(kind Kind) (string, error) {
	if !kind.Valid() {
		return "", errs.New(errs.ErrKindNotFound, fmt.Sprintf("unknown template kind %q", kind))
	}
	data, err := defaultTemplates.ReadFile("templates/" + FileName(kind))
	if err != nil {
		return "", errs.Wrap(errs.ErrKindNotFound, fmt.Sprintf("template %s not embedded", kind), err)
	}
	return string(data), nil
}

// ExportDefaults writes the embedded templates into dir so they can be
// edited and served back through NewDirSource. Existing files are kept
// unless overwrite is set. It returns the paths written.
func ExportDefaults(dir string, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(errs.ErrKindPermissionDenied, "create template dir "+dir, err)
	}

	var written []string
	for _, kind := range Kinds() {
		dst := filepath.Join(dir, FileName(kind))
		if !overwrite {
			if _, err := os.Stat(dst); err == nil {
				continue
			}
		}
		tmpl, err := DefaultTemplate(kind)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(dst, []byte(tmpl), 0o644); err != nil {
			return written, errs.Wrap(errs.ErrKindUnknown, "write "+dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}
