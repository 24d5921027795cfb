package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/kvfs/pkg/vfs"
)

var putCmd = &cobra.Command{
	Use:   "put <path> [file]",
	Short: "Store a file",
	Long: `Store a file at the given virtual path.

Reads from the named local file, or from stdin when no file (or "-") is
given. An existing record at the path is fully replaced.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fs, err := openFilesystem(cfg)
		if err != nil {
			return err
		}
		defer fs.Close()

		in := os.Stdin
		if len(args) == 2 && args[1] != "-" {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		n, err := fs.Write(cmd.Context(), args[0], vfs.FromReader(in))
		if err != nil {
			return err
		}

		fmt.Printf("wrote %d bytes to %s\n", n, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
