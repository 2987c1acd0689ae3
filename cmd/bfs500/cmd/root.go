package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/csrbfs/bfs500/pkg/config"
	"github.com/csrbfs/bfs500/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logger     utils.Logger

	// Loaded application config
	appConfig *config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "bfs500",
	Short: "A direction-optimizing BFS engine for CSR graphs",
	Long: `bfs500 builds compressed sparse row graphs from edge lists and runs a
direction-optimizing breadth-first search over them, in the manner of the
graph500 reference benchmark's omp-csr kernel.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appConfig = cfg

		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to ./config.yaml or /etc/bfs500)")

	binName := BinName()
	rootCmd.Example = `  # Build a CSR from an edge list and write a gzipped JSON dump of it
  ` + binName + ` build -i ./edges.txt -o ./graph.csr.json.gz

  # Run one BFS from source vertex 0 and validate the resulting tree
  ` + binName + ` bfs -i ./edges.txt -s 0 --validate

  # Sweep BFS from 16 random sources and report mean TEPS
  ` + binName + ` bench -i ./edges.txt -n 16

  # Expose a health-check endpoint while a long benchmark job runs
  ` + binName + ` serve --grpc-addr :9090 --http-addr :8080`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the loaded application config.
func GetConfig() *config.Config {
	return appConfig
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
