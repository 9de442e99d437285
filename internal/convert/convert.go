// Package convert selects a conversion strategy by name.
package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/innobrain/onoffice-structure/internal/convert/jsonschema"
	"github.com/innobrain/onoffice-structure/internal/convert/plain"
	"github.com/innobrain/onoffice-structure/internal/convert/promptschema"
	"github.com/innobrain/onoffice-structure/internal/convert/rules"
	"github.com/innobrain/onoffice-structure/internal/model"
)

// ErrUnknownFormat is returned for a format name no strategy exists for.
var ErrUnknownFormat = errors.New("unknown format")

// Format names an output representation.
type Format string

const (
	FormatPlain      Format = "plain"
	FormatJSONSchema Format = "jsonschema"
	FormatPrompt     Format = "prompt"
	FormatRules      Format = "rules"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatPlain, FormatJSONSchema, FormatPrompt, FormatRules}
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options carries the switches of every strategy. Each strategy reads only
// the ones it understands.
type Options struct {
	DropEmpty           bool
	IncludeNullable     bool
	IncludeDescriptions bool
	PipeSyntax          bool
	// RequiredFields overrides the prompt-schema required heuristic when
	// non-nil.
	RequiredFields []string
}

// DefaultOptions returns the defaults the strategies use on their own.
func DefaultOptions() Options {
	return Options{
		IncludeNullable:     true,
		IncludeDescriptions: true,
		PipeSyntax:          true,
	}
}

// New builds the strategy for format.
func New(format Format, opts Options) (model.Strategy, error) {
	switch format {
	case FormatPlain:
		return plain.New(plain.WithDropEmpty(opts.DropEmpty)), nil
	case FormatJSONSchema:
		return jsonschema.New(
			jsonschema.WithNullable(opts.IncludeNullable),
			jsonschema.WithDescriptions(opts.IncludeDescriptions),
		), nil
	case FormatPrompt:
		promptOpts := []promptschema.Option{
			promptschema.WithNullable(opts.IncludeNullable),
			promptschema.WithDescriptions(opts.IncludeDescriptions),
		}
		if opts.RequiredFields != nil {
			promptOpts = append(promptOpts, promptschema.WithRequiredFields(opts.RequiredFields...))
		}
		return promptschema.New(promptOpts...), nil
	case FormatRules:
		return rules.New(
			rules.WithPipeSyntax(opts.PipeSyntax),
			rules.WithNullable(opts.IncludeNullable),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
