package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/koustreak/dbscaffold/internal/artifact"
	"github.com/koustreak/dbscaffold/internal/codegen"
	"github.com/koustreak/dbscaffold/internal/config"
	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/filestore"
	"github.com/koustreak/dbscaffold/internal/schema"
)

const dryRunBucket = "dry-run"

type generateFlags struct {
	schemaPath    string
	tables        []string
	out           string
	bucket        string
	dbType        string
	namespace     string
	prefix        string
	suffix        string
	annotations   bool
	privateFields bool
	nameConverter bool
	dbDescription bool
	only          []string
	dryRun        bool
}

func generateCmd(current func() *app) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sources for every table of a schema document",
		Long: `Generate reads a YAML or JSON schema document and writes one file per
artifact and table to the configured output (a directory or a bucket).`,
		Example: `  dbscaffold generate --schema tables.yaml --out ./generated
  dbscaffold generate --schema tables.yaml --only model,dto --db-type SqlServer
  dbscaffold generate --schema tables.yaml --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			applyGenerateFlags(cmd, a.cfg, &f)
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), a, &f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.schemaPath, "schema", "s", "", "schema document (YAML or JSON)")
	fl.StringSliceVarP(&f.tables, "table", "t", nil, "only generate these tables (repeatable)")
	fl.StringVarP(&f.out, "out", "o", "", "output directory (overrides output.dir)")
	fl.StringVar(&f.bucket, "bucket", "", "upload to this bucket instead of a directory")
	fl.StringVar(&f.dbType, "db-type", "", "database type: MySql, SqlServer, PostgreSql")
	fl.StringVar(&f.namespace, "namespace", "", "C# namespace for entities")
	fl.StringVar(&f.prefix, "prefix", "", "entity class name prefix")
	fl.StringVar(&f.suffix, "suffix", "", "entity class name suffix")
	fl.BoolVar(&f.annotations, "annotations", true, "emit data annotations")
	fl.BoolVar(&f.privateFields, "private-fields", false, "emit backing fields with full properties")
	fl.BoolVar(&f.nameConverter, "name-converter", false, "derive model names from table names")
	fl.BoolVar(&f.dbDescription, "db-description", false, "emit column descriptions as comments")
	fl.StringSliceVar(&f.only, "only", nil, "artifact kinds to generate (default all)")
	fl.BoolVar(&f.dryRun, "dry-run", false, "generate in memory and list the files without writing them")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

// applyGenerateFlags overlays explicitly set flags on the loaded config.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config, f *generateFlags) {
	changed := cmd.Flags().Changed
	g := &cfg.Generator
	if changed("db-type") {
		g.DatabaseType = f.dbType
	}
	if changed("namespace") {
		g.Namespace = f.namespace
	}
	if changed("prefix") {
		g.Prefix = f.prefix
	}
	if changed("suffix") {
		g.Suffix = f.suffix
	}
	if changed("annotations") {
		g.DataAnnotations = f.annotations
	}
	if changed("private-fields") {
		g.PrivateFields = f.privateFields
	}
	if changed("name-converter") {
		g.NameConverter = f.nameConverter
	}
	if changed("db-description") {
		g.DbDescription = f.dbDescription
	}
	if changed("only") {
		g.Artifacts = f.only
	}
	if changed("out") {
		cfg.Output.Sink = config.SinkDir
		cfg.Output.Dir = f.out
	}
	if changed("bucket") {
		cfg.Output.Sink = config.SinkMinIO
		cfg.Output.Bucket = f.bucket
	}
}

func runGenerate(ctx context.Context, w io.Writer, a *app, f *generateFlags) error {
	doc, err := schema.LoadFile(f.schemaPath)
	if err != nil {
		return err
	}
	tables, err := selectTables(doc, f.tables)
	if err != nil {
		return err
	}

	kinds, err := a.artifactKinds()
	if err != nil {
		return err
	}
	src, err := a.templateSource(ctx)
	if err != nil {
		return err
	}

	var (
		sink artifact.Sink
		mem  *filestore.Memory
	)
	if f.dryRun {
		mem = filestore.NewMemory()
		if sink, err = artifact.NewStoreSink(ctx, mem, dryRunBucket, ""); err != nil {
			return err
		}
	} else if sink, err = a.sink(ctx); err != nil {
		return err
	}

	gen := a.generator(src)
	ctx = a.log.WithContext(ctx)
	run, err := codegen.GenerateTables(ctx, gen, tables, a.cfg.Options(), a.cfg.Generator.DatabaseType, kinds, a.cfg.Generator.Concurrency)
	if err != nil {
		return err
	}

	writeErr := artifact.WriteAll(ctx, sink, run.Artifacts())

	if mem != nil {
		return printDryRun(ctx, w, mem, run, writeErr)
	}
	printRun(w, run, destination(a.cfg))
	if writeErr != nil {
		return writeErr
	}
	return failedErr(run)
}

func selectTables(doc *schema.Document, names []string) ([]schema.Table, error) {
	if len(names) == 0 {
		return doc.Tables, nil
	}
	out := make([]schema.Table, 0, len(names))
	for _, name := range names {
		t := doc.Find(name)
		if t == nil {
			return nil, errs.New(errs.ErrKindNotFound, fmt.Sprintf("table %q not in schema", name))
		}
		out = append(out, *t)
	}
	return out, nil
}

func destination(cfg *config.Config) string {
	if cfg.Output.Sink == config.SinkMinIO {
		return cfg.Output.Bucket + "/" + cfg.Output.Prefix
	}
	return cfg.Output.Dir
}

func printRun(w io.Writer, run *codegen.Run, dest string) {
	ok := color.New(color.FgGreen).Sprint("✓")
	fail := color.New(color.FgRed).Sprint("✗")
	for _, res := range run.Results {
		fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(res.Table))
		for _, art := range res.Artifacts {
			fmt.Fprintf(w, "  %s %s\n", ok, art.FileName)
		}
		for _, fl := range res.Failures {
			fmt.Fprintf(w, "  %s %s: %v\n", fail, fl.Kind, fl.Err)
		}
	}
	fmt.Fprintf(w, "\n%d artifact(s) written to %s (run %s)\n", len(run.Artifacts()), dest, run.ID)
}

func printDryRun(ctx context.Context, w io.Writer, mem *filestore.Memory, run *codegen.Run, writeErr error) error {
	objects, err := mem.ListObjects(ctx, dryRunBucket, filestore.ListOptions{Recursive: true})
	if err != nil {
		return err
	}
	tag := color.New(color.FgYellow).Sprint("DRY RUN")
	for _, obj := range objects {
		fmt.Fprintf(w, "%s %-40s %6d bytes\n", tag, obj.Key, obj.Size)
	}
	for _, res := range run.Results {
		for _, fl := range res.Failures {
			fmt.Fprintf(w, "%s %s %s: %v\n", color.New(color.FgRed).Sprint("FAILED "), res.Table, fl.Kind, fl.Err)
		}
	}
	if writeErr != nil {
		return writeErr
	}
	return failedErr(run)
}

func failedErr(run *codegen.Run) error {
	if err := run.Err(); err != nil {
		return fmt.Errorf("some artifacts failed: %w", err)
	}
	return nil
}
