package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/gizzahub/lpmcore/fsutil"
	"github.com/gizzahub/lpmcore/pkg/cliutil"
)

var lsFormat string

var lsCmd = &cobra.Command{
	Use:   "ls <path>",
	Short: "List path's entries as a unicode-aware table",
	Args:  cobra.ExactArgs(1),
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringVar(&lsFormat, "format", "default", "output format: "+fmtJoin(cliutil.CoreFormats))
}

type lsEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func runLs(cmd *cobra.Command, args []string) error {
	if err := cliutil.ValidateFormat(lsFormat, cliutil.CoreFormats); err != nil {
		return err
	}

	names, err := fsutil.List(args[0])
	if err != nil {
		return err
	}

	entries := make([]lsEntry, 0, len(names))
	for _, n := range names {
		info, err := fsutil.Stat(args[0] + "/" + n)
		kind := "?"
		if err == nil && info != nil {
			switch {
			case info.Symlink != "":
				kind = "link -> " + info.Symlink
			case info.Type == fsutil.TypeDir:
				kind = "dir"
			default:
				kind = "file"
			}
		}
		entries = append(entries, lsEntry{Name: n, Kind: kind})
	}

	if cliutil.IsMachineFormat(lsFormat) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	width := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Name); w > width {
			width = w
		}
	}
	for _, e := range entries {
		fmt.Printf("%s%s  %s\n", e.Name, runewidth.FillRight("", width-runewidth.StringWidth(e.Name)), e.Kind)
	}
	return nil
}

func fmtJoin(formats []string) string {
	out := ""
	for i, f := range formats {
		if i > 0 {
			out += "|"
		}
		out += f
	}
	return out
}
