package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"genosketch/config"
	"genosketch/internal/adapter/fs"
	"genosketch/internal/adapter/seqio"
	"genosketch/internal/usecase"
)

var buildGroup string

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Sketch and index sequence files",
	Long: `Sketch every FASTA file in the given directory and add it to the
disk-backed LSH index stored in .genosketch/ within that directory.
Building is incremental in the sense that re-adding a label replaces its
previous sketch.

Examples:
  genosketch build .                  # Index current directory
  genosketch build --group ecoli ./refs/ecoli`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildGroup, "group", "", "group tag recorded with every sketch")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	c := GetConfig()

	if err := config.EnsureDataDir(path); err != nil {
		return fmt.Errorf("failed to create .genosketch directory: %w", err)
	}

	index, gen, err := openIndex(path, true)
	if err != nil {
		return err
	}
	defer index.Close()

	catalog, err := openCatalog(path)
	if err != nil {
		return err
	}
	defer catalog.Close()

	walker := fs.NewWalker(c.Scan.Includes, c.Scan.Excludes)
	buildUC := usecase.NewBuildUseCase(index, catalog, walker, seqio.NewReader(), gen)

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	progress := func(processed, total int, currentFile string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Sketching[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(processed)
	}

	result, err := buildUC.Build(path, buildGroup, progress)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	params := index.Params()
	fmt.Printf("\nBuild complete:\n")
	fmt.Printf("  Files sketched: %d\n", result.FilesSketched)
	fmt.Printf("  Files empty:    %d\n", result.FilesEmpty)
	fmt.Printf("  Files failed:   %d\n", result.FilesFailed)
	fmt.Printf("  Parameters:     width=%d stages=%d buckets=%d k=%d\n",
		params.Width, params.Stages, params.Buckets, params.KmerSize)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nIndex stored at: %s\n", config.IndexDir(path))
	return nil
}
