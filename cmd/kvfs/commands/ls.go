package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/kvfs/internal/bytesize"
	"github.com/marmos91/kvfs/internal/cli/output"
)

var lsRecursive bool

var lsCmd = &cobra.Command{
	Use:   "ls [prefix]",
	Short: "List files and directories",
	Long: `List the virtual tree under a prefix.

Without --recursive, files directly under the prefix are listed and deeper
files collapse into one directory entry per next-level segment.`,
	Args: cobra.MaximumNArgs(1),
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

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		entries, err := fs.List(cmd.Context(), prefix, lsRecursive, nil)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			size, modified := "", ""
			if entry.Record != nil {
				size = bytesize.ByteSize(entry.Record.Size).String()
				modified = entry.Record.ModifiedAt.Format("2006-01-02 15:04:05")
			}
			rows = append(rows, []string{entry.Name, string(entry.Kind), size, modified})
		}

		output.Table(os.Stdout, []string{"Name", "Kind", "Size", "Modified"}, rows)
		return nil
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "r", false, "list all files under the prefix")
	rootCmd.AddCommand(lsCmd)
}
