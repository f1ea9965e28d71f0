package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"genosketch/internal/usecase"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old-label> <new-label>",
	Short: "Relabel a sketched genome in index and catalog",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
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

	renameUC := usecase.NewRenameUseCase(index, catalog)
	if err := renameUC.Rename(args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("Renamed %s to %s\n", args[0], args[1])
	return nil
}
