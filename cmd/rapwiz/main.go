package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/rapwiz/internal"
	"codeberg.org/snonux/rapwiz/internal/cli"
	"codeberg.org/snonux/rapwiz/internal/logging"
	"codeberg.org/snonux/rapwiz/internal/lyrics"
	"codeberg.org/snonux/rapwiz/internal/models"
	"codeberg.org/snonux/rapwiz/internal/phonetic"
	"codeberg.org/snonux/rapwiz/internal/processor"
	"codeberg.org/snonux/rapwiz/internal/server"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create commands
	rootCmd := cli.CreateRootCommand(flags)
	serveCmd := cli.CreateServeCommand(flags)
	rootCmd.AddCommand(serveCmd)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run functions
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newAnalyzer builds the logger, picks the transcriber and wires the
// analyzer from the loaded configuration.
func newAnalyzer(ctx context.Context) (*lyrics.Analyzer, *slog.Logger) {
	logger := logging.New(viper.GetString("log.level"), viper.GetString("log.format"))

	model := phonetic.LoadModel(ctx, cli.G2PConfig(), logger)
	transcriber := phonetic.New(model.G2P, model.Available, logger)
	logger.Info("transcriber ready", slog.String("transcriber", transcriber.Name()))

	return lyrics.NewAnalyzer(transcriber, cli.AnalyzerOptions(logger)...), logger
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(ctx, cmd.OutOrStdout(), viper.GetString("g2p.openai_model"))
	}

	// Values may come from the config file or environment
	flags.Format = viper.GetString("output.format")
	flags.ExportDSN = viper.GetString("export.dsn")

	analyzer, logger := newAnalyzer(ctx)
	proc := processor.NewProcessor(flags, analyzer, cmd.OutOrStdout(), logger)

	// Stored reports are read back without analyzing anything
	if flags.ListReports {
		return proc.ListReports(ctx)
	}
	if flags.ShowReport != "" {
		return proc.ShowReport(ctx, flags.ShowReport)
	}

	if flags.BatchFile != "" {
		return proc.ProcessBatch(ctx)
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	return proc.ProcessInput(ctx, path)
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, logger := newAnalyzer(ctx)
	srv := server.New(cli.ServerConfig(), analyzer, analyzer.Transcriber(), internal.Version, logger)

	return srv.Run(ctx)
}
