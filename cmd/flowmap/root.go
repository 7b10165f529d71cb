package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/config"
	"github.com/psidex/flowmap/internal/lib"
	"github.com/psidex/flowmap/internal/loader"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "flowmap",
	Short: "flowmap draws the commuting flows of an Italian region",
	Long: `flowmap loads the 2011 census commuting matrix and renders, for one region and
one purpose, the incoming and outgoing flows between that region and the rest of
Italy as curved, width-scaled edges.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(renderCmd, queryCmd, regionsCmd, snapshotCmd)
}

// env is what every data command needs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	tables *commuting.Tables
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger, err := lib.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	tables, err := loader.NewLoader(cfg.Data.HTTPTimeout, logger).Load(ctx, cfg.Data.Sources())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, tables: tables}, nil
}

// selectionFlags are the --region and --purpose flags shared by the data commands.
type selectionFlags struct {
	region  int
	purpose string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.region, "region", "r", 0, "ISTAT region code (default from config)")
	cmd.Flags().StringVarP(&f.purpose, "purpose", "p", "", "Work, Study or Total (default from config)")
}

func (f *selectionFlags) resolve(cfg *config.Config) (commuting.Region, commuting.Purpose, error) {
	region, purpose, err := cfg.DefaultSelection()
	if err != nil {
		return 0, 0, err
	}
	if f.region != 0 {
		region = commuting.Region(f.region)
		if err := commuting.CheckRegion(region); err != nil {
			return 0, 0, err
		}
	}
	if f.purpose != "" {
		if purpose, err = commuting.ParsePurpose(f.purpose); err != nil {
			return 0, 0, err
		}
	}
	return region, purpose, nil
}
