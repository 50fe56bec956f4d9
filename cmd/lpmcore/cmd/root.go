// Package cmd implements the lpmcore CLI commands, a thin terminal front
// end over the lpmcore.Registry surface: a cobra command tree with a
// colored usage template and persistent verbose/quiet flags.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gizzahub/lpmcore/hostenv"
	"github.com/gizzahub/lpmcore/pkg/cliutil"
)

var (
	appVersion string

	verbose bool
	quiet   bool

	globals *hostenv.Globals
)

var rootCmd = &cobra.Command{
	Use:   "lpmcore",
	Short: "Exercise the lpmcore package-manager runtime from a terminal",
	Long: `lpmcore is a thin CLI over the lpmcore host surface: HTTPS GET, git
clone/fetch/reset, archive extraction, hashing, and advisory locking.
` + cliutil.QuickStartHelp(`  # Download a file and verify its checksum
  lpmcore get https://example.com/archive.tar.gz -o archive.tar.gz
  lpmcore hash --file archive.tar.gz

  # Extract it and clone a repository
  lpmcore extract archive.tar.gz ./out
  lpmcore git init ./repo https://example.com/repo.git
  lpmcore git fetch ./repo`),
	Version: appVersion,
}

// Execute adds all child commands to the root command and runs it. It is
// called once by main.main.
func Execute(version string) {
	appVersion = version
	rootCmd.Version = version
	globals = hostenv.New(os.Args)

	setCommandGroups(rootCmd)
	rootCmd.SetUsageTemplate(usageTemplate)
	silenceRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setCommandGroups(cmd *cobra.Command) {
	networkGroup := &cobra.Group{ID: "network", Title: cliutil.ColorYellowBold + "Network Operations" + cliutil.ColorReset}
	localGroup := &cobra.Group{ID: "local", Title: cliutil.ColorYellowBold + "Local Operations" + cliutil.ColorReset}
	cmd.AddGroup(networkGroup, localGroup)

	for _, c := range cmd.Commands() {
		switch c.Name() {
		case "get", "git", "certs":
			c.GroupID = networkGroup.ID
		case "extract", "hash", "lock", "watch", "ls", "stat":
			c.GroupID = localGroup.ID
		}
	}
}

func silenceRecursive(cmd *cobra.Command) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	for _, c := range cmd.Commands() {
		silenceRecursive(c)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (errors only)")
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}

const usageTemplate = `{{if .Runnable}}` + cliutil.ColorGreenBold + `Usage:` + cliutil.ColorReset + `
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}` + cliutil.ColorGreenBold + `Usage:` + cliutil.ColorReset + `
  {{.CommandPath}} [command]{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Available Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

` + cliutil.ColorGreenBold + `Flags:` + cliutil.ColorReset + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

` + cliutil.ColorGreenBold + `Global Flags:` + cliutil.ColorReset + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
