package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show index parameters and catalog statistics",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	index, _, err := openIndex(GetRootDir(), false)
	if err != nil {
		return err
	}
	defer index.Close()

	catalog, err := openCatalog(GetRootDir())
	if err != nil {
		return err
	}
	defer catalog.Close()

	params := index.Params()
	fmt.Printf("Index parameters:\n")
	fmt.Printf("  Width:        %d\n", params.Width)
	fmt.Printf("  Stages:       %d\n", params.Stages)
	fmt.Printf("  Buckets:      %d\n", params.Buckets)
	fmt.Printf("  K-mer size:   %d\n", params.KmerSize)

	stats, err := catalog.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read catalog stats: %w", err)
	}
	fmt.Printf("\nCatalog:\n")
	fmt.Printf("  Genomes:      %d\n", stats.TotalGenomes)
	fmt.Printf("  Total k-mers: %d\n", stats.TotalKmers)
	fmt.Printf("  Avg k-mers:   %.1f\n", stats.AvgKmers)

	genomes, err := catalog.ListGenomes()
	if err != nil {
		return fmt.Errorf("failed to list genomes: %w", err)
	}
	if len(genomes) > 0 {
		fmt.Printf("\nLabels:\n")
		for _, g := range genomes {
			group := g.Group
			if group == "" {
				group = "-"
			}
			fmt.Printf("  %s\t%s\t%s\n", g.Label, group, g.Path)
		}
	}
	return nil
}
