package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gizzahub/lpmcore/httpfetch"
)

// certKindValue implements pflag.Value so --kind rejects an unrecognized
// string at flag-parse time instead of at runCerts time.
type certKindValue struct{ s string }

func (v *certKindValue) String() string { return v.s }
func (v *certKindValue) Type() string   { return "certKind" }
func (v *certKindValue) Set(s string) error {
	if _, err := parseCertKind(s); err != nil {
		return err
	}
	v.s = s
	return nil
}

var (
	certsKindFlag = &certKindValue{}
	certsPath     string
)

var certsCmd = &cobra.Command{
	Use:   "certs",
	Short: "Configure the TLS trust store used by subsequent get calls (git does not use it)",
	Long: `Configures the process-wide TLS trust store. Run without --kind to pick
interactively with an arrow-key form; pass --kind to configure
non-interactively in scripts.`,
	RunE: runCerts,
}

func init() {
	rootCmd.AddCommand(certsCmd)
	certsCmd.Flags().Var(certsKindFlag, "kind", "dir, file, system, or noverify")
	certsCmd.Flags().StringVar(&certsPath, "path", "", "CA directory or file path (required for kind=dir/file)")
}

var _ pflag.Value = (*certKindValue)(nil)

func runCerts(cmd *cobra.Command, args []string) error {
	kindName, path := certsKindFlag.String(), certsPath

	if kindName == "" {
		if err := runCertsWizard(&kindName, &path); err != nil {
			return err
		}
	}

	kind, err := parseCertKind(kindName)
	if err != nil {
		return err
	}

	if err := httpfetch.Certs(kind, path); err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("TLS trust store configured: %s\n", kindName)
	}
	return nil
}

// runCertsWizard prompts interactively for a CertKind and, when needed,
// a path using a small huh.NewForm/huh.NewSelect/huh.NewInput form.
func runCertsWizard(kindName, path *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("TLS certificate source").
				Description("Select how lpmcore should validate HTTPS peers for get").
				Options(
					huh.NewOption("Directory of CA certificates", "dir"),
					huh.NewOption("Single CA bundle file", "file"),
					huh.NewOption("System trust store", "system"),
					huh.NewOption("Disable verification (insecure)", "noverify"),
				).
				Value(kindName),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return fmt.Errorf("certs wizard: %w", err)
	}

	if *kindName == "dir" || *kindName == "file" {
		pathForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Path").
					Description("Directory or file containing the CA certificate(s)").
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("path is required for kind=%s", *kindName)
						}
						return nil
					}).
					Value(path),
			),
		).WithTheme(huh.ThemeCharm())
		if err := pathForm.Run(); err != nil {
			return fmt.Errorf("certs wizard: %w", err)
		}
	}

	return nil
}

func parseCertKind(s string) (httpfetch.CertKind, error) {
	switch s {
	case "dir":
		return httpfetch.CertDir, nil
	case "file":
		return httpfetch.CertFile, nil
	case "system":
		return httpfetch.CertSystem, nil
	case "noverify":
		return httpfetch.CertNoVerify, nil
	default:
		return 0, fmt.Errorf("invalid cert kind %q (want dir|file|system|noverify)", s)
	}
}
