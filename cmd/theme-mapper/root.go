// cmd/theme-mapper/root.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"theme-mapper/internal/common/config"
	apperrors "theme-mapper/internal/common/errors"
	"theme-mapper/internal/common/logger"
	"theme-mapper/internal/common/prompt"
	"theme-mapper/internal/runner"
	writetheme "theme-mapper/internal/stages/write-theme"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const stageConfig = "config"

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "theme-mapper",
		Short: "Convert a tenant theme into a UI component library theme",
		Long: `theme-mapper downloads a theme from your tenant, resolves its variables
and writes theme.json in the format expected by the UI component library.

Values not given by flag, environment (THEME_MAPPER_*) or config file are
asked for interactively.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, configFile)
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./configs/config.yaml)")

	flags := cmd.Flags()
	flags.String("tenant", "", "tenant domain, e.g. acme.eu.qlikcloud.com")
	flags.String("api-key", "", "API key used as bearer token")
	flags.String("theme", "", "theme name, asked for when empty")
	flags.StringP("output", "o", "", "output file, - for stdout (default theme.json)")
	flags.Bool("indent", false, "indent the written JSON")
	flags.String("unresolved-policy", "", "what to do with undefined variables: warn or fail (default warn)")
	flags.Bool("resolve-arrays", true, "resolve variables inside arrays")
	flags.Bool("cache", false, "cache downloaded theme documents in Redis")
	flags.String("log-level", "", "log level: debug, info, warn, error (default warn)")
	flags.String("log-format", "", "log format: console or json (default console)")
	flags.String("metrics-textfile", "", "write run metrics to this file in Prometheus text format")

	cmd.AddCommand(newMappingsCmd(&configFile), newVersionCmd())
	return cmd
}

func runConvert(cmd *cobra.Command, configFile string) error {
	cfg, err := loadConfig(configFile, cmd.Flags())
	if err != nil {
		reporter := apperrors.NewReporter(logger.NewNoOpLogger(), cmd.ErrOrStderr())
		return reporter.Report(apperrors.NewInvalidConfigurationError(err), stageConfig)
	}
	cfg.App.Version = version

	log, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		reporter := apperrors.NewReporter(logger.NewNoOpLogger(), cmd.ErrOrStderr())
		return reporter.Report(apperrors.NewInvalidConfigurationError(err), stageConfig)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Keep stdout clean when it carries the theme.
	messages := cmd.OutOrStdout()
	if cfg.Output.Path == writetheme.StdoutPath {
		messages = cmd.ErrOrStderr()
	}

	r := runner.New(runner.Options{
		Config:   cfg,
		Logger:   log,
		Prompter: prompt.New(cmd.InOrStdin(), messages),
		Messages: messages,
		Stdout:   cmd.OutOrStdout(),
	})

	_, err = r.Run(ctx)
	return err
}

func loadConfig(path string, flags *pflag.FlagSet) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path, flags)
	}
	return config.Load(flags)
}
