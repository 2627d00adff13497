// Package cli implements the dbscaffold command line.
package cli

import (
	"context"

	"github.com/koustreak/dbscaffold/internal/artifact"
	"github.com/koustreak/dbscaffold/internal/codegen"
	"github.com/koustreak/dbscaffold/internal/config"
	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/filestore"
	"github.com/koustreak/dbscaffold/internal/filestore/minio"
	"github.com/koustreak/dbscaffold/internal/logger"
	"github.com/koustreak/dbscaffold/internal/scaffold"
)

// app holds what a command needs once the configuration is loaded.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	store filestore.Store

	// newStore opens object storage; tests replace it.
	newStore func(ctx context.Context, cfg *filestore.Config) (filestore.Store, error)
}

func newApp(cfg *config.Config) *app {
	log := logger.New(cfg.LoggerConfig())
	logger.SetGlobal(log)
	return &app{
		cfg: cfg,
		log: log,
		newStore: func(ctx context.Context, sc *filestore.Config) (filestore.Store, error) {
			d, err := minio.New(ctx, sc)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
	}
}

// objectStore connects on first use; the driver pings before returning.
func (a *app) objectStore(ctx context.Context) (filestore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := a.newStore(ctx, a.cfg.StorageConfig())
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.ErrorWith("close object store", err, nil)
		}
	}
}

// templateSource builds the configured source, cached when CacheSize > 0.
func (a *app) templateSource(ctx context.Context) (scaffold.Source, error) {
	tc := a.cfg.Templates
	var src scaffold.Source
	switch tc.Source {
	case config.SourceEmbedded, "":
		src = scaffold.EmbeddedSource()
	case config.SourceDir:
		src = scaffold.NewDirSource(tc.Dir)
	case config.SourceMinIO:
		store, err := a.objectStore(ctx)
		if err != nil {
			return nil, err
		}
		src = scaffold.NewObjectSource(store, tc.Bucket, tc.Prefix)
	default:
		return nil, errs.InvalidArgument("unknown template source " + tc.Source)
	}
	if tc.CacheSize > 0 {
		src = scaffold.NewCachedSource(src, tc.CacheSize)
	}
	return src, nil
}

// sink builds the configured output sink.
func (a *app) sink(ctx context.Context) (artifact.Sink, error) {
	oc := a.cfg.Output
	switch oc.Sink {
	case config.SinkDir, "":
		return artifact.NewDirSink(oc.Dir), nil
	case config.SinkMinIO:
		store, err := a.objectStore(ctx)
		if err != nil {
			return nil, err
		}
		return artifact.NewStoreSink(ctx, store, oc.Bucket, oc.Prefix)
	default:
		return nil, errs.InvalidArgument("unknown output sink " + oc.Sink)
	}
}

func (a *app) generator(src scaffold.Source) *codegen.DefaultGenerator {
	return codegen.New(codegen.Config{
		Registry:              dbtype.DefaultRegistry(),
		Converter:             a.cfg.Converter(),
		Engine:                scaffold.NewEngine(src, a.log),
		CommonFields:          a.cfg.CommonFields(),
		PrimaryKeyDescription: a.cfg.Generator.PrimaryKeyDescription,
		Logger:                a.log,
	})
}

func (a *app) artifactKinds() ([]codegen.ArtifactKind, error) {
	return codegen.ParseArtifactKinds(a.cfg.Generator.Artifacts)
}
