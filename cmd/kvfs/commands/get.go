package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print a file's content to stdout",
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

		_, err = fs.Read(cmd.Context(), args[0], func(chunk []byte) error {
			_, werr := os.Stdout.Write(chunk)
			return werr
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
