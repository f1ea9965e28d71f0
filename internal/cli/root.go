package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"genosketch/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "genosketch",
	Short: "Approximate genome similarity search with MinHash sketches and LSH",
	Long: `genosketch sketches genome and protein FASTA collections with MinHash and
finds approximate nearest neighbors through a banded LSH index, either fully
in memory or disk-backed with a bounded bucket cache.

Example usage:
  genosketch build ./genomes             # Sketch and index a directory
  genosketch find -d ./genomes query.fa  # Find the closest indexed genomes
  genosketch mash a.fa b.fa c.fa         # Pairwise distance table`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./genosketch.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "indexed directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
