package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gizzahub/lpmcore/archive"
)

var extractCmd = &cobra.Command{
	Use:   "extract <src> <dst>",
	Short: "Extract a zip/tar/tar.gz/tar.xz archive into dst",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := archive.Extract(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("extracted %s -> %s\n", args[0], args[1])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
