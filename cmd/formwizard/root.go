package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/status"
	"github.com/goliatone/go-formwizard/pkg/submission"
)

// cli carries the resolved configuration and logger between commands.
type cli struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "formwizard",
		Short:         "National ID application wizard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = c.logger.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "YAML config file")
	flags.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", "", "log format (json, console)")

	cmd.AddCommand(
		newServeCmd(c),
		newApplyCmd(c),
		newStatusCmd(c),
		newFeeCmd(c),
		newDashboardCmd(c),
	)
	return cmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath, nil)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = c.logFormat
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

// submitter returns the HTTP backend when a submit URL is configured and the
// simulated one otherwise.
func (c *cli) submitter() (submission.Submitter, error) {
	if c.cfg.SubmitURL != "" {
		client, err := submission.NewHTTPClient(c.cfg.SubmitURL, submission.WithHTTPLogger(c.logger))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return submission.NewSimulated(
		submission.WithDelay(c.cfg.SubmitDelay),
		submission.WithLogger(c.logger),
	), nil
}

func (c *cli) directory() (*status.Directory, error) {
	return status.NewSeededDirectory(
		status.WithDelay(c.cfg.LookupDelay),
		status.WithLogger(c.logger),
	)
}

// lookup returns the HTTP backend when a lookup URL is configured and dir
// otherwise.
func (c *cli) lookup(dir *status.Directory) (status.Lookup, error) {
	if c.cfg.LookupURL != "" {
		client, err := status.NewHTTPClient(c.cfg.LookupURL, status.WithHTTPLogger(c.logger))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return dir, nil
}
