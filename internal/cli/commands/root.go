package commands

import (
	"context"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose  bool
	noColor  bool
	noInput  bool
	language string
	viper    *viper.Viper
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	g := &globalOptions{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "onoffice-structure",
		Short: "Inspect and convert the onOffice field configuration",
		Long: color.CyanString(`onoffice-structure - onOffice field configuration tooling

Fetches the module and field metadata of an onOffice enterprise account and
converts it into other representations.

Formats:
  • plain       nested data mirroring the field configuration
  • jsonschema  JSON Schema documents (draft 2020-12)
  • prompt      structured output schemas for language models
  • rules       request validation rules such as "string|max:80|nullable"`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&g.noInput, "no-input", false, "Never prompt for missing credentials")
	flags.StringVar(&g.language, "language", "", "Label language (DEU, ENG, FRA, ESP, HRV, ITA)")
	_ = g.viper.BindPFlag("language", flags.Lookup("language"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if g.noColor {
			color.NoColor = true
		}
	}

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newModulesCommand(g))
	rootCmd.AddCommand(newConvertCommand(g))
	rootCmd.AddCommand(newServeCommand(g))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the onoffice-structure version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)

			titleColor.Fprint(out, "onoffice-structure version: ")
			fmt.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
