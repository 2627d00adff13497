// Package scaffold renders the supporting source files (DTO wrapper,
// repository, service, controller) from {TOKEN} templates.
//
// Templates come from a Source: the embedded defaults, a directory, an
// object store bucket, or an in-memory map. Sources are read-only.
package scaffold

import (
	"context"
	"fmt"
	"strings"

	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/logger"
)

// Kind names one scaffold template.
type Kind string

const (
	KindDTO         Kind = "DTO"
	KindIRepository Kind = "IRepository"
	KindRepository  Kind = "Repository"
	KindIService    Kind = "IService"
	KindService     Kind = "Service"
	KindController  Kind = "Controller"
)

// Kinds lists every template kind in generation order.
func Kinds() []Kind {
	return []Kind{KindDTO, KindIRepository, KindRepository, KindIService, KindService, KindController}
}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind matches s against the known kinds, ignoring case.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", errs.New(errs.ErrKindNotFound, fmt.Sprintf("unknown template kind %q", s))
}

// Tokens maps placeholder names, without braces, to replacement text.
type Tokens map[string]string

// Source loads the raw text of a template.
type Source interface {
	// Load returns the template for kind, or an errs.ErrKindNotFound error.
	Load(ctx context.Context, kind Kind) (string, error)
}

// Engine renders templates from a Source. It is safe for concurrent use.
type Engine struct {
	src Source
	log *logger.Logger
}

// NewEngine builds an engine over src. A nil log discards output.
func NewEngine(src Source, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{src: src, log: log}
}

// Source returns the engine's template source.
func (e *Engine) Source() Source { return e.src }

// Render loads the kind template and substitutes tokens into it.
func (e *Engine) Render(ctx context.Context, kind Kind, tokens Tokens) (string, error) {
	if !kind.Valid() {
		return "", errs.New(errs.ErrKindNotFound, fmt.Sprintf("unknown template kind %q", kind))
	}
	tmpl, err := e.src.Load(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("load %s template: %w", kind, err)
	}
	e.log.With().Str("template", string(kind)).Int("tokens", len(tokens)).Logger().Debug("rendering template")
	return Substitute(tmpl, tokens), nil
}

// Substitute replaces every {NAME} whose NAME is in tokens, scanning left to
// right once. Replacement text is never rescanned; placeholders with no
// entry in tokens are copied unchanged.
func Substitute(tmpl string, tokens Tokens) string {
	if len(tokens) == 0 {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		if tmpl[i] == '{' {
			if end := strings.IndexAny(tmpl[i+1:], "{}\n"); end >= 0 && tmpl[i+1+end] == '}' {
				if v, ok := tokens[tmpl[i+1:i+1+end]]; ok {
					b.WriteString(v)
					i += end + 2
					continue
				}
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}
	return b.String()
}
