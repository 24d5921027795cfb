package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/kvfs/internal/cli/prompt"
)

var (
	rmRecursive bool
	rmQuiet     bool
	rmForce     bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove files",
	Long: `Remove the file at the given path, or every file under it with
--recursive.

Each file is deleted in its own transaction: a failure partway through
leaves earlier deletions in place. With --quiet, failures (a missing path
included) are treated as successful no-ops.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if rmRecursive && !rmForce {
			ok, err := prompt.Confirm(fmt.Sprintf("Remove every file under %q", args[0]), false)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}

		fs, err := openFilesystem(cfg)
		if err != nil {
			return err
		}
		defer fs.Close()

		deleted, err := fs.Remove(cmd.Context(), args[0], rmRecursive, rmQuiet)
		if err != nil {
			return err
		}

		for _, path := range deleted {
			fmt.Println(path)
		}
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmRecursive, "recursive", "r", false, "remove every file under the path")
	rmCmd.Flags().BoolVarP(&rmQuiet, "quiet", "q", false, "treat failures as no-ops")
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}
