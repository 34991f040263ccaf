// Package main provides the CLI entrypoint for the MWA sensitivity tools.
// It wires subcommands (frb, sensitivity), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"mwasens/internal/config"
	"mwasens/pkg/logger"
	"mwasens/pkg/metrics"
	"mwasens/pkg/serrors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// errorFields describes err for the log, adding its semantic kind when it has one.
func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	if k := serrors.KindOf(err); k != nil {
		fields = append(fields, zap.String("kind", k.Error()))
	}

	return fields
}

// getMetrics creates a metrics recorder for command and returns it along with
// a cleanup function that writes the configured textfile and stops the meter
// provider.
func getMetrics(ctx context.Context, cfg *config.Config, command string) (*metrics.Recorder, func()) {
	rec, err := metrics.New(command)
	if err != nil {
		logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
	}

	return rec, func() {
		if cfg.Metrics.Textfile != "" {
			if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				logger.Warn(ctx, "could not write metrics", zap.Error(err))
			} else {
				logger.Info(ctx, "metrics written", zap.String("file", cfg.Metrics.Textfile))
			}
		}
		if err := rec.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "could not stop metrics recorder", zap.Error(err))
		}
	}
}

// alias registers hidden flags sharing the value of the flag called name.
func alias(fs *pflag.FlagSet, name string, aliases ...string) {
	f := fs.Lookup(name)
	for _, a := range aliases {
		fs.AddFlag(&pflag.Flag{
			Name:        a,
			Usage:       f.Usage,
			Value:       f.Value,
			DefValue:    f.DefValue,
			NoOptDefVal: f.NoOptDefVal,
			Hidden:      true,
		})
	}
}

// main loads configuration, sets up the root Cobra command with logging, and
// registers subcommands before executing the CLI.
func main() {
	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using a standard flag set that ignores every
	// other flag.
	pre := flag.NewFlagSet("mwasens", flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	configPath := pre.String("config", "config.yml", "The config file path")
	pre.Bool("v", false, "verbose")
	pre.Bool("verbose", false, "verbose")
	_ = pre.Parse(os.Args[1:])

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	rootCmd := &cobra.Command{
		Use:          "mwasens",
		Short:        "MWA sensitivity and FRB rate estimates",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verb, err := cmd.Flags().GetBool("verb"); err == nil && verb {
				verbose = true
			}
			logger.Setup(cfg.Environment, verbose)
			cmd.SetContext(logger.WithFields(cmd.Context(),
				zap.String("command", cmd.Name()),
				zap.String("runID", uuid.NewString()),
			))
		},
	}
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().String("config", "config.yml", "Config File Path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every sweep step")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		frbCommand(cfg),
		sensitivityCommand(cfg),
	)

	err = rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error(ctx, "command failed", errorFields(err)...)
	}
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
