package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/rapwiz/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rapwiz [file]",
		Short: "Hebrew rap rhyme scheme analyzer",
		Long: `rapwiz detects end-of-line rhyme schemes in Hebrew song lyrics.

Each line's last word is transcribed to a phonetic key, keys with similar
endings are grouped and the groups are lettered into a scheme like AABB.

Examples:
  rapwiz song.txt                      # Analyze a lyric file
  cat song.txt | rapwiz                # Analyze stdin
  rapwiz --format json song.txt        # Print the JSON report
  rapwiz --batch album.txt --workers 8 # Analyze several songs
  rapwiz --export reports.db song.txt  # Store the report in SQLite
  rapwiz --export reports.db --list-reports
  rapwiz serve --port 5000             # Run the HTTP API`,
		Args:          cobra.MaximumNArgs(1),
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateServeCommand creates the serve subcommand
func CreateServeCommand(flags *Flags) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the rhyme analysis HTTP API",
		Long: `serve starts an HTTP server exposing:

  GET  /         service banner
  POST /analyze  analyze {"lyrics": "..."} (rate limited per client)
  GET  /health   component health`,
		Args: cobra.NoArgs,
	}

	setupServeFlags(serveCmd, flags)

	return serveCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.rapwiz.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")
	cmd.PersistentFlags().StringVar(&flags.G2PProvider, "g2p", flags.G2PProvider, "External phoneme model: none, openai, gemini")
	cmd.PersistentFlags().BoolVar(&flags.StripNiqqud, "strip-niqqud", false, "Remove vowel points before extracting words")
	cmd.PersistentFlags().Float64Var(&flags.Threshold, "threshold", flags.Threshold, "Minimum similarity for two end words to rhyme")

	// Local flags
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Report format (text or json)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Analyze several songs from file (separated by '---' lines)")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", flags.Workers, "Songs analyzed in parallel in batch mode")
	cmd.Flags().StringVar(&flags.ExportDSN, "export", "", "Store reports in an SQLite file or libsql:// database")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI chat models usable for phoneme transcription")
	cmd.Flags().BoolVar(&flags.ListReports, "list-reports", false, "List the reports stored in the --export database")
	cmd.Flags().StringVar(&flags.ShowReport, "show-report", "", "Print a report stored in the --export database by ID")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func setupServeFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVar(&flags.Host, "host", flags.Host, "Address to listen on")
	cmd.Flags().IntVarP(&flags.Port, "port", "p", flags.Port, "Port to listen on")

	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("g2p.provider", cmd.PersistentFlags().Lookup("g2p"))
	viper.BindPFlag("analysis.strip_niqqud", cmd.PersistentFlags().Lookup("strip-niqqud"))
	viper.BindPFlag("analysis.threshold", cmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("export.dsn", cmd.Flags().Lookup("export"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env file is fine
	_ = godotenv.Load()

	SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".rapwiz" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rapwiz")
	}

	// Environment variables, e.g. RAPWIZ_G2P_PROVIDER for g2p.provider
	viper.SetEnvPrefix("RAPWIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// SetDefaults registers the default value of every configuration key
func SetDefaults() {
	viper.SetDefault("analysis.threshold", 0.4)
	viper.SetDefault("analysis.strip_niqqud", false)

	viper.SetDefault("g2p.provider", "none")
	viper.SetDefault("g2p.openai_model", "gpt-4o-mini")
	viper.SetDefault("g2p.gemini_model", "gemini-2.0-flash")
	viper.SetDefault("g2p.timeout", "10s")
	viper.SetDefault("g2p.breaker_failures", 5)
	viper.SetDefault("g2p.breaker_timeout", "30s")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.rate_limit", 10)
	viper.SetDefault("cors.allowed_origins", "*")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("output.format", "text")
	viper.SetDefault("export.dsn", "")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("g2p.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}

	return viper.GetString("g2p.gemini_key")
}
