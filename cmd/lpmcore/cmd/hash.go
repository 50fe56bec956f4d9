package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gizzahub/lpmcore/hashutil"
)

var hashFilePath string

var hashCmd = &cobra.Command{
	Use:   "hash [string]",
	Short: "Print the SHA-256 hex digest of a string or, with --file, a file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().StringVar(&hashFilePath, "file", "", "hash this file's contents instead of an argument string")
}

func runHash(cmd *cobra.Command, args []string) error {
	if hashFilePath != "" {
		digest, err := hashutil.HashFile(hashFilePath)
		if err != nil {
			return err
		}
		fmt.Println(digest)
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("hash requires either a string argument or --file")
	}
	fmt.Println(hashutil.HashBytes([]byte(args[0])))
	return nil
}
