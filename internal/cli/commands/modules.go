package commands

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/innobrain/onoffice-structure/internal/cli/ui"
	"github.com/innobrain/onoffice-structure/internal/model"
)

func newModulesCommand(g *globalOptions) *cobra.Command {
	var (
		input  string
		only   []string
		module string
	)

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List modules and their fields",
		Long: `List the modules of the field configuration with their field counts,
or the fields of one module.

Examples:
  onoffice-structure modules
  onoffice-structure modules --only estate,address
  onoffice-structure modules --module estate --input fields.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			if module != "" {
				only = []string{module}
			}
			modules, err := g.loadModules(cmd, e, input, only)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if module == "" {
				table := ui.NewTable(out, g.noColor, "KEY", "LABEL", "FIELDS")
				for key, m := range modules.All() {
					table.AddRow(key, m.Label, strconv.Itoa(m.Fields.Len()))
				}
				table.Render()
				return nil
			}

			m, ok := modules.Module(model.ModuleKey(module))
			if !ok {
				return fmt.Errorf("module %q is not part of the field configuration", module)
			}

			title := color.New(color.FgCyan, color.Bold)
			if g.noColor {
				title.DisableColor()
			}
			title.Fprintf(out, "%s (%s)\n\n", m.Label, m.Key)

			table := ui.NewTable(out, g.noColor, "KEY", "LABEL", "TYPE", "LENGTH", "DEFAULT", "VALUES")
			for _, f := range m.Fields.All() {
				table.AddRow(f.Key, f.Label, f.Type.String(), optionalInt(f.Length), optionalString(f.Default), strconv.Itoa(f.PermittedValues.Len()))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Read a saved fields response instead of calling the API")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Restrict to these modules")
	cmd.Flags().StringVarP(&module, "module", "m", "", "List the fields of one module")

	return cmd
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optionalString(v *string) string {
	if v == nil {
		return "-"
	}
	return strconv.Quote(*v)
}
