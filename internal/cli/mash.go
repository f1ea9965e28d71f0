package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"genosketch/internal/adapter/minhash"
	"genosketch/internal/adapter/seqio"
	"genosketch/internal/usecase"
)

var mashCmd = &cobra.Command{
	Use:   "mash <a.fa> <b.fa> [more files...]",
	Short: "Pairwise MinHash distance table for a set of files",
	Long: `Sketch every given file and print the estimated distance of every pair,
without touching any index. Useful for picking index parameters and for
small corpora where a full table is affordable.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMash,
}

func init() {
	rootCmd.AddCommand(mashCmd)
}

func runMash(cmd *cobra.Command, args []string) error {
	c := GetConfig()

	gen, err := minhash.New(c.Sketch.KmerSize, c.Sketch.Width)
	if err != nil {
		return err
	}

	mashUC := usecase.NewMashUseCase(seqio.NewReader(), gen)

	result, err := mashUC.Mash(args)
	if err != nil {
		return fmt.Errorf("mash failed: %w", err)
	}

	fmt.Printf("a\tb\tdistance\n")
	for _, p := range result.Pairs {
		fmt.Printf("%s\t%s\t%.4f\n", p.A, p.B, p.Distance)
	}

	if result.Failed > 0 {
		fmt.Printf("\n%d files skipped:\n", result.Failed)
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	return nil
}
