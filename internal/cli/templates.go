package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/koustreak/dbscaffold/internal/dbtype"
	"github.com/koustreak/dbscaffold/internal/errs"
	"github.com/koustreak/dbscaffold/internal/scaffold"
)

func templatesCmd(current func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect and export scaffold templates",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show which templates the configured source provides",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			src, err := a.templateSource(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Source: %s\n", a.cfg.Templates.Source)
			for _, kind := range scaffold.Kinds() {
				_, err := src.Load(cmd.Context(), kind)
				switch {
				case err == nil:
					fmt.Fprintf(w, "  %s %-12s %s\n", color.New(color.FgGreen).Sprint("OK     "), kind, scaffold.FileName(kind))
				case errs.IsNotFound(err):
					fmt.Fprintf(w, "  %s %-12s %s\n", color.New(color.FgYellow).Sprint("MISSING"), kind, scaffold.FileName(kind))
				default:
					fmt.Fprintf(w, "  %s %-12s %v\n", color.New(color.FgRed).Sprint("ERROR  "), kind, err)
				}
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [kind]",
		Short: "Print a template from the configured source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := scaffold.ParseKind(args[0])
			if err != nil {
				return err
			}
			src, err := current().templateSource(cmd.Context())
			if err != nil {
				return err
			}
			tmpl, err := src.Load(cmd.Context(), kind)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), tmpl)
			return err
		},
	}

	var dir string
	var overwrite bool
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in templates to a directory for editing",
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := scaffold.ExportDefaults(dir, overwrite)
			for _, p := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.New(color.FgGreen).Sprint("✓"), p)
			}
			if err != nil {
				return err
			}
			if len(written) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing written; use --overwrite to replace existing files")
			}
			return nil
		},
	}
	exportCmd.Flags().StringVar(&dir, "dir", "templates", "target directory")
	exportCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing files")

	cmd.AddCommand(listCmd, showCmd, exportCmd)
	return cmd
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported database types",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range dbtype.DefaultRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
