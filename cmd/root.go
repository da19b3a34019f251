package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/museosabiertos/artcat/internal/exportcmd"
	"github.com/museosabiertos/artcat/internal/match"
)

func NewRootCmd() *cobra.Command {
	var verbose bool
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "artcat",
		Short: "Artwork description documents to tabular export",
		Long: `artcat converts a directory tree of .docx artwork descriptions into a single
tabular export, pairing each document's metadata with the image files of
matching name in the same folder.

The tree must be one level deep: a root directory containing subdirectories,
each holding documents and images that belong together.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			initConfig(cfgFile)
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./artcat.yaml or ~/.config/artcat/artcat.yaml)")

	cmd.AddCommand(exportcmd.NewExportCmd())
	cmd.AddCommand(exportcmd.NewInspectCmd())

	return cmd
}

// initConfig wires viper: defaults, an optional artcat.yaml, and ARTCAT_*
// environment variables. The root path is deliberately excluded; it comes
// from the argument or the interactive prompt only.
func initConfig(cfgFile string) {
	viper.SetDefault("match.threshold", match.DefaultThreshold)
	viper.SetDefault("match.epsilon", match.DefaultEpsilon)
	viper.SetDefault("export.delimiter", ",")
	viper.SetDefault("export.quote", `"`)
	viper.SetDefault("export.format", "csv")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("artcat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "artcat"))
		}
	}

	viper.SetEnvPrefix("ARTCAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("Using config file", "path", viper.ConfigFileUsed())
	}
}
