package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"genosketch/internal/adapter/seqio"
	"genosketch/internal/usecase"
)

var (
	findMaxNeighbors int
	findMaxDistance  float64
)

var findCmd = &cobra.Command{
	Use:   "find <query.fa> [more queries...]",
	Short: "Find the closest indexed genomes for query files",
	Long: `Sketch each query file and report its nearest indexed neighbors as a
tab-separated table of query, match, group and distance. Queries that fail
to read or match nothing are counted and reported without aborting the
batch.

Examples:
  genosketch find -d ./refs query.fa
  genosketch find -d ./refs -k 5 --max-distance 0.3 reads/*.fa`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().IntVarP(&findMaxNeighbors, "max-neighbors", "k", 0, "maximum neighbors per query (default from config)")
	findCmd.Flags().Float64Var(&findMaxDistance, "max-distance", 0, "maximum reported distance in (0,1] (default from config)")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	c := GetConfig()

	maxNeighbors := findMaxNeighbors
	if maxNeighbors == 0 {
		maxNeighbors = c.Find.MaxNeighbors
	}
	maxDistance := findMaxDistance
	if maxDistance == 0 {
		maxDistance = c.Find.MaxDistance
	}

	index, gen, err := openIndex(GetRootDir(), false)
	if err != nil {
		return err
	}
	defer index.Close()

	findUC := usecase.NewFindUseCase(index, seqio.NewReader(), gen)

	result, err := findUC.Find(args, maxNeighbors, maxDistance)
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}

	fmt.Printf("query\tmatch\tgroup\tdistance\n")
	for _, report := range result.Reports {
		if report.Err != "" {
			fmt.Printf("%s\t-\t-\terror: %s\n", report.Query, report.Err)
			continue
		}
		if len(report.Neighbors) == 0 {
			fmt.Printf("%s\t-\t-\tno match\n", report.Query)
			continue
		}
		for _, n := range report.Neighbors {
			group := n.Group
			if group == "" {
				group = "-"
			}
			fmt.Printf("%s\t%s\t%s\t%.4f\n", report.Query, n.Label, group, n.Distance)
		}
	}

	fmt.Printf("\n%d queries: %d matched, %d unmatched, %d failed\n",
		result.Queries, result.Matched, result.Empty, result.Failed)
	return nil
}
