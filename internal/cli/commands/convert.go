package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/innobrain/onoffice-structure/internal/cli/ui"
	"github.com/innobrain/onoffice-structure/internal/convert"
	"github.com/innobrain/onoffice-structure/internal/model"
	"github.com/innobrain/onoffice-structure/internal/payload"
)

type convertOptions struct {
	input          string
	format         string
	module         string
	field          string
	where          []string
	dropEmpty      bool
	pipe           bool
	noNullable     bool
	noDescriptions bool
	required       []string
}

func newConvertCommand(g *globalOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert modules into another representation",
		Long: `Convert the field configuration and print it as JSON.

Without --module every module is converted and keyed by module key.

Examples:
  onoffice-structure convert --format jsonschema --module estate
  onoffice-structure convert --format rules --module estate --where vermarktungsart=miete
  onoffice-structure convert --format prompt --module address --required Name,Email
  onoffice-structure convert --format plain --drop-empty --input fields.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, g, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Read a saved fields response instead of calling the API")
	flags.StringVarP(&opts.format, "format", "f", string(convert.FormatPlain), "Output format: plain, jsonschema, prompt, rules")
	flags.StringVarP(&opts.module, "module", "m", "", "Convert one module")
	flags.StringVar(&opts.field, "field", "", "Convert one field of --module")
	flags.StringArrayVarP(&opts.where, "where", "w", nil, "Keep fields whose filters allow key=value (repeatable)")
	flags.BoolVar(&opts.dropEmpty, "drop-empty", false, "plain: drop null and empty values")
	flags.BoolVar(&opts.pipe, "pipe", true, "rules: join rules with |")
	flags.BoolVar(&opts.noNullable, "no-nullable", false, "Do not mark fields without a default nullable")
	flags.BoolVar(&opts.noDescriptions, "no-descriptions", false, "Leave out labels as descriptions")
	flags.StringSliceVar(&opts.required, "required", nil, "prompt: fields listed as required instead of those with a default")

	return cmd
}

func runConvert(cmd *cobra.Command, g *globalOptions, opts *convertOptions) error {
	format, err := convert.ParseFormat(opts.format)
	if err != nil {
		ui.NotFound("format", opts.format, formatNames(), g.noColor).Write(cmd.ErrOrStderr())
		return err
	}
	if opts.field != "" && opts.module == "" {
		return fmt.Errorf("--field requires --module")
	}
	criteria, err := parseWhere(opts.where)
	if err != nil {
		return err
	}

	convertOpts := convert.DefaultOptions()
	convertOpts.DropEmpty = opts.dropEmpty
	convertOpts.PipeSyntax = opts.pipe
	convertOpts.IncludeNullable = !opts.noNullable
	convertOpts.IncludeDescriptions = !opts.noDescriptions
	if cmd.Flags().Changed("required") {
		convertOpts.RequiredFields = opts.required
	}
	strategy, err := convert.New(format, convertOpts)
	if err != nil {
		return err
	}

	e, err := g.setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	var only []string
	if opts.module != "" {
		only = []string{opts.module}
	}
	modules, err := g.loadModules(cmd, e, opts.input, only)
	if err != nil {
		return err
	}
	modules = filterModules(modules, criteria)

	var result any
	switch {
	case opts.module == "":
		out := payload.NewObject()
		for key, m := range modules.All() {
			out.Set(key, m.Convert(strategy))
		}
		result = out
	default:
		m, ok := modules.Module(model.ModuleKey(opts.module))
		if !ok {
			return fmt.Errorf("module %q is not part of the field configuration", opts.module)
		}
		if opts.field == "" {
			result = m.Convert(strategy)
			break
		}
		f, ok := m.Fields.Field(opts.field)
		if !ok {
			ui.NotFound("field", opts.field, m.Fields.Keys(), g.noColor).Write(cmd.ErrOrStderr())
			return fmt.Errorf("unknown field %q in module %s", opts.field, m.Key)
		}
		result = f.Convert(strategy)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// parseWhere parses "key=value" criteria; a repeated key keeps the last
// value.
func parseWhere(pairs []string) (map[string]string, error) {
	criteria := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --where %q: expected key=value", pair)
		}
		criteria[strings.TrimSpace(key)] = value
	}
	return criteria, nil
}

func filterModules(modules model.ModuleCollection, criteria map[string]string) model.ModuleCollection {
	if len(criteria) == 0 {
		return modules
	}

	filtered := make([]*model.Module, 0, modules.Len())
	for _, m := range modules.All() {
		builder := m.Fields.WhereMatchesFilters()
		for k, v := range criteria {
			builder.Where(k, v)
		}
		filtered = append(filtered, &model.Module{Key: m.Key, Label: m.Label, Fields: builder.Get()})
	}
	return model.NewModuleCollection(filtered...)
}

func formatNames() []string {
	names := make([]string, 0, len(convert.Formats()))
	for _, f := range convert.Formats() {
		names = append(names, f.String())
	}
	return names
}
