package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/kvfs/internal/bytesize"
	"github.com/marmos91/kvfs/internal/cli/output"
)

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show a file's metadata",
	Args:  cobra.ExactArgs(1),
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

		rec, err := fs.Metadata(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		output.Table(os.Stdout,
			[]string{"Name", "Kind", "Size", "Modified"},
			[][]string{{
				rec.Name,
				string(rec.Kind),
				bytesize.ByteSize(rec.Size).String(),
				rec.ModifiedAt.Format("2006-01-02 15:04:05"),
			}})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
}
