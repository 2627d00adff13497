package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/koustreak/dbscaffold/internal/artifact"
	"github.com/koustreak/dbscaffold/internal/codegen"
	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/logger"
	"github.com/koustreak/dbscaffold/internal/scaffold"
	"github.com/koustreak/dbscaffold/internal/schema"
)

type generateRequest struct {
	DatabaseType string          `json:"database_type"`
	Options      *schema.Options `json:"options"`
	Tables       []schema.Table  `json:"tables"`
	Artifacts    []string        `json:"artifacts"`
	Persist      bool            `json:"persist"`
}

type artifactResponse struct {
	Kind     string `json:"kind"`
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

type failureResponse struct {
	Kind    string `json:"kind"`
	Error   string `json:"error"`
	ErrKind string `json:"error_kind"`
}

type tableResponse struct {
	Table     string             `json:"table"`
	Artifacts []artifactResponse `json:"artifacts"`
	Errors    []failureResponse  `json:"errors"`
}

type generateResponse struct {
	RunID     string          `json:"run_id"`
	Results   []tableResponse `json:"results"`
	Persisted bool            `json:"persisted,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDatabaseTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"database_types": s.cfg.Registry.Names()})
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	kind, err := scaffold.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	tmpl, err := s.cfg.Templates.Load(r.Context(), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tmpl))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Generator == nil {
		writeError(w, errs.New(errs.ErrKindUnknown, "generator not configured"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req generateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large", Kind: errs.ErrKindInvalidInput.String()})
			return
		}
		writeError(w, errs.Wrap(errs.ErrKindInvalidInput, "decode request", err))
		return
	}
	if len(req.Tables) == 0 {
		writeError(w, errs.InvalidArgument("tables must not be empty"))
		return
	}

	opts := req.Options
	if opts == nil {
		opts = s.cfg.Options
	}
	dbType := req.DatabaseType
	if dbType == "" {
		dbType = s.cfg.DatabaseType
	}
	if _, err := s.cfg.Registry.Provider(dbType); err != nil {
		writeError(w, err)
		return
	}
	kinds := s.cfg.Artifacts
	if len(req.Artifacts) > 0 {
		var err error
		if kinds, err = codegen.ParseArtifactKinds(req.Artifacts); err != nil {
			writeError(w, err)
			return
		}
	}

	run, err := codegen.GenerateTables(r.Context(), s.cfg.Generator, req.Tables, opts, dbType, kinds, s.cfg.Concurrency)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := generateResponse{RunID: run.ID, Results: make([]tableResponse, 0, len(run.Results))}
	for _, res := range run.Results {
		tr := tableResponse{Table: res.Table, Artifacts: []artifactResponse{}, Errors: []failureResponse{}}
		for _, a := range res.Artifacts {
			tr.Artifacts = append(tr.Artifacts, artifactResponse{Kind: a.Kind, FileName: a.FileName, Content: a.Content})
		}
		for _, f := range res.Failures {
			tr.Errors = append(tr.Errors, failureResponse{Kind: string(f.Kind), Error: f.Err.Error(), ErrKind: errs.KindOf(f.Err).String()})
		}
		resp.Results = append(resp.Results, tr)
	}

	if req.Persist {
		if s.cfg.Sink == nil {
			writeError(w, errs.InvalidArgument("persist requested but no output sink is configured"))
			return
		}
		if err := artifact.WriteAll(r.Context(), s.cfg.Sink, run.Artifacts()); err != nil {
			logger.FromContext(r.Context()).ErrorWith("persist artifacts", err, map[string]interface{}{"run_id": run.ID})
			writeError(w, err)
			return
		}
		resp.Persisted = true
	}

	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.ErrKindInvalidInput:
		return http.StatusBadRequest
	case errs.ErrKindNotFound:
		return http.StatusNotFound
	case errs.ErrKindUnmappedType:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error(), Kind: errs.KindOf(err).String()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
