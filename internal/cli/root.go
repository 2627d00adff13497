package cli

import (
	"github.com/spf13/cobra"

	"github.com/koustreak/dbscaffold/internal/config"
	"github.com/koustreak/dbscaffold/internal/version"
)

// RootCmd builds the dbscaffold command tree.
func RootCmd() *cobra.Command {
	var (
		cfgPath  string
		logLevel string
		a        *app
	)
	current := func() *app { return a }

	rootCmd := &cobra.Command{
		Use:     "dbscaffold",
		Short:   "dbscaffold - C# and Vue code generation from table schemas",
		Version: version.String(),
		Long: `dbscaffold turns table descriptions into C# entities, DTOs, repositories,
services and controllers plus a Vue edit dialog for each table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			a = newApp(cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default "+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(generateCmd(current))
	rootCmd.AddCommand(serveCmd(current))
	rootCmd.AddCommand(mcpCmd(current))
	rootCmd.AddCommand(templatesCmd(current))
	rootCmd.AddCommand(typesCmd())

	return rootCmd
}
