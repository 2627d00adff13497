package codegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/koustreak/dbscaffold/internal/artifact"
	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/logger"
	"github.com/koustreak/dbscaffold/internal/schema"
)

// ArtifactKind selects one generated file per table.
type ArtifactKind string

const (
	ArtifactModel       ArtifactKind = "model"
	ArtifactDialog      ArtifactKind = "dialog"
	ArtifactIRepository ArtifactKind = "irepository"
	ArtifactRepository  ArtifactKind = "repository"
	ArtifactDTO         ArtifactKind = "dto"
	ArtifactIService    ArtifactKind = "iservice"
	ArtifactService     ArtifactKind = "service"
	ArtifactController  ArtifactKind = "controller"
)

// ArtifactKinds lists every kind in generation order.
func ArtifactKinds() []ArtifactKind {
	return []ArtifactKind{
		ArtifactModel, ArtifactDialog, ArtifactIRepository, ArtifactRepository,
		ArtifactDTO, ArtifactIService, ArtifactService, ArtifactController,
	}
}

// ParseArtifactKinds resolves names such as "model,dto" case-insensitively.
// An empty list selects every kind.
func ParseArtifactKinds(names []string) ([]ArtifactKind, error) {
	var kinds []ArtifactKind
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		k := ArtifactKind(n)
		found := false
		for _, known := range ArtifactKinds() {
			if k == known {
				found = true
				break
			}
		}
		if !found {
			return nil, errs.InvalidArgument(fmt.Sprintf("unknown artifact kind %q", n))
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return ArtifactKinds(), nil
	}
	return kinds, nil
}

// Names are the type names derived from a model name.
type Names struct {
	Model       string
	IRepository string
	Repository  string
	IService    string
	Service     string
	Dto         string
	Controller  string
}

// NamesFor derives the scaffold type names from model.
func NamesFor(model string) Names {
	return Names{
		Model:       model,
		IRepository: "I" + model + "Repository",
		Repository:  model + "Repository",
		IService:    "I" + model + "Service",
		Service:     model + "Service",
		Dto:         model + "Dto",
		Controller:  model + "Controller",
	}
}

// FileName is the output file for kind.
func (n Names) FileName(kind ArtifactKind) string {
	switch kind {
	case ArtifactModel:
		return n.Model + ".cs"
	case ArtifactDialog:
		return n.Model + ".vue"
	case ArtifactIRepository:
		return n.IRepository + ".cs"
	case ArtifactRepository:
		return n.Repository + ".cs"
	case ArtifactDTO:
		return n.Dto + ".cs"
	case ArtifactIService:
		return n.IService + ".cs"
	case ArtifactService:
		return n.Service + ".cs"
	case ArtifactController:
		return n.Controller + ".cs"
	default:
		return n.Model + "." + string(kind)
	}
}

// Failure records one artifact that could not be produced.
type Failure struct {
	Kind ArtifactKind
	Err  error
}

// Result holds the artifacts produced for one table.
type Result struct {
	Table     string
	Names     Names
	Artifacts []artifact.Artifact
	Failures  []Failure
}

// Err aggregates every failure, or returns nil.
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, f := range r.Failures {
		merr = multierror.Append(merr, fmt.Errorf("%s %s: %w", r.Table, f.Kind, f.Err))
	}
	return merr.ErrorOrNil()
}

// GenerateAll produces the selected artifacts for table in ArtifactKinds
// order. Each artifact is independent: a failure is recorded in
// Result.Failures and the remaining artifacts are still generated. Only
// invalid arguments fail the whole call.
func GenerateAll(ctx context.Context, gen Generator, table *schema.Table, opts *schema.Options, databaseType string, kinds []ArtifactKind) (*Result, error) {
	if err := checkArgs(table, opts); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		kinds = ArtifactKinds()
	}
	selected := make(map[ArtifactKind]bool, len(kinds))
	for _, k := range kinds {
		selected[k] = true
	}

	names := NamesFor(gen.ModelName(table, opts))
	res := &Result{Table: table.TableName, Names: names}
	log := logger.FromContext(ctx).With().Str("table", table.TableName).Logger()

	for _, kind := range ArtifactKinds() {
		if !selected[kind] {
			continue
		}
		if err := ctx.Err(); err != nil {
			res.Failures = append(res.Failures, Failure{Kind: kind, Err: errs.Wrap(errs.ErrKindTimeout, "generation cancelled", err)})
			continue
		}

		content, err := generateOne(ctx, gen, kind, table, opts, databaseType, names)
		if err != nil {
			log.WarnWith("artifact failed", err, map[string]interface{}{"artifact": string(kind)})
			res.Failures = append(res.Failures, Failure{Kind: kind, Err: err})
			continue
		}
		res.Artifacts = append(res.Artifacts, artifact.Artifact{
			Table:    table.TableName,
			Kind:     string(kind),
			FileName: names.FileName(kind),
			Content:  content,
		})
		log.Debugf("generated %s", names.FileName(kind))
	}
	return res, nil
}

func generateOne(ctx context.Context, gen Generator, kind ArtifactKind, table *schema.Table, opts *schema.Options, databaseType string, n Names) (string, error) {
	switch kind {
	case ArtifactModel:
		return gen.GenerateModel(table, opts, databaseType)
	case ArtifactDialog:
		return gen.GenerateDialog(table, opts, databaseType)
	case ArtifactIRepository:
		return gen.GenerateIRepository(ctx, n.IRepository, n.Model)
	case ArtifactRepository:
		return gen.GenerateRepository(ctx, n.IRepository, n.Repository, n.Model)
	case ArtifactDTO:
		return gen.GenerateDTO(ctx, table, opts, n.Model, n.Dto, databaseType)
	case ArtifactIService:
		return gen.GenerateIService(ctx, n.IService, n.Dto)
	case ArtifactService:
		return gen.GenerateService(ctx, n.Service, n.IService, n.IRepository, n.Dto, n.Model)
	case ArtifactController:
		return gen.GenerateController(ctx, n.Controller, n.IService, n.Dto, n.Model)
	default:
		return "", errs.InvalidArgument(fmt.Sprintf("unknown artifact kind %q", kind))
	}
}

// Run is one batch of tables generated together.
type Run struct {
	ID      string
	Results []*Result
}

// Artifacts flattens every produced artifact in table order.
func (r *Run) Artifacts() []artifact.Artifact {
	var out []artifact.Artifact
	for _, res := range r.Results {
		out = append(out, res.Artifacts...)
	}
	return out
}

// Err aggregates the failures of every table.
func (r *Run) Err() error {
	var merr *multierror.Error
	for _, res := range r.Results {
		if err := res.Err(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

// GenerateTables runs GenerateAll for each table with at most concurrency
// tables in flight. Results keep the order of tables. An invalid table or
// a cancelled context fails the batch.
func GenerateTables(ctx context.Context, gen Generator, tables []schema.Table, opts *schema.Options, databaseType string, kinds []ArtifactKind, concurrency int) (*Run, error) {
	if opts == nil {
		return nil, errs.InvalidArgument("options are nil")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	run := &Run{ID: uuid.NewString(), Results: make([]*Result, len(tables))}
	log := logger.FromContext(ctx).With().Str("run_id", run.ID).Logger()
	ctx = log.WithContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range tables {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errs.Wrap(errs.ErrKindTimeout, "generation cancelled", err)
			}
			res, err := GenerateAll(gctx, gen, &tables[i], opts, databaseType, kinds)
			if err != nil {
				return fmt.Errorf("table %d (%s): %w", i, tables[i].TableName, err)
			}
			run.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.InfoWith("generation finished", map[string]interface{}{
		"tables":    len(tables),
		"artifacts": len(run.Artifacts()),
	})
	return run, nil
}
