package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/innobrain/onoffice-structure/internal/cli/config"
	"github.com/innobrain/onoffice-structure/internal/cli/ui"
	"github.com/innobrain/onoffice-structure/internal/model"
	"github.com/innobrain/onoffice-structure/internal/onoffice"
	"github.com/innobrain/onoffice-structure/internal/parser"
	"github.com/innobrain/onoffice-structure/internal/payload"
	"github.com/innobrain/onoffice-structure/internal/structure"
)

// env bundles what a command needs after start-up.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func (g *globalOptions) setup() (*env, error) {
	cfg, err := config.LoadWith(g.viper)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if g.verbose {
		level = "debug"
	}
	logger, err := newLogger(level)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

// loadModules reads modules from input when given, otherwise fetches them
// from the API. only restricts the result; with no keys the configured
// modules apply, and with none configured every module is loaded.
func (g *globalOptions) loadModules(cmd *cobra.Command, e *env, input string, only []string) (model.ModuleCollection, error) {
	if len(only) == 0 {
		only = e.cfg.Modules
	}
	keys, err := g.parseModuleKeys(cmd, only)
	if err != nil {
		return model.ModuleCollection{}, err
	}

	if input != "" {
		return readModules(input, e.logger, keys)
	}

	creds, err := g.credentials(cmd, e.cfg)
	if err != nil {
		return model.ModuleCollection{}, err
	}

	client := onoffice.NewClient(
		onoffice.WithURL(e.cfg.API.URL),
		onoffice.WithTimeout(e.cfg.API.Timeout),
		onoffice.WithLogger(e.logger),
	)
	s := structure.New(structure.NewFieldConfiguration(client,
		structure.WithLanguage(e.cfg.ParsedLanguage()),
		structure.WithLogger(e.logger),
	))

	var modules model.ModuleCollection
	err = ui.WithSpinner(cmd.ErrOrStderr(), "Fetching field configuration", g.noColor, func() error {
		var err error
		modules, err = s.ForClient(creds).GetModules(cmd.Context(), keys...)
		return err
	})
	return modules, err
}

// readModules parses a saved API response or a bare module id -> record
// object.
func readModules(path string, logger *zap.Logger, keys []model.ModuleKey) (model.ModuleCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ModuleCollection{}, fmt.Errorf("failed to read input: %w", err)
	}

	raw, err := payload.DecodeObject(bytes.TrimSpace(data))
	if err != nil {
		return model.ModuleCollection{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if _, ok := raw.Object("response"); ok {
		if raw, err = onoffice.DecodeFieldsResponse(data); err != nil {
			return model.ModuleCollection{}, err
		}
	}

	return parser.New(parser.WithLogger(logger)).Parse(raw).Only(keys...), nil
}

func (g *globalOptions) parseModuleKeys(cmd *cobra.Command, names []string) ([]model.ModuleKey, error) {
	keys := make([]model.ModuleKey, 0, len(names))
	for _, name := range names {
		key, err := model.ParseModuleKey(strings.TrimSpace(name))
		if err != nil {
			ui.NotFound("module", name, model.ModuleValues(), g.noColor).Write(cmd.ErrOrStderr())
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// credentials returns the configured credentials, prompting for missing
// parts on an interactive terminal.
func (g *globalOptions) credentials(cmd *cobra.Command, cfg *config.Config) (onoffice.Credentials, error) {
	creds := cfg.Credentials()
	err := creds.Validate()
	if err == nil {
		return creds, nil
	}
	if g.noInput || !isatty.IsTerminal(os.Stdin.Fd()) {
		ui.ConfigError(err.Error(), g.noColor).Write(cmd.ErrOrStderr())
		return creds, err
	}

	var questions []*survey.Question
	if creds.Token == "" {
		questions = append(questions, &survey.Question{
			Name:     "token",
			Prompt:   &survey.Input{Message: "onOffice API token:"},
			Validate: survey.Required,
		})
	}
	if creds.Secret == "" {
		questions = append(questions, &survey.Question{
			Name:     "secret",
			Prompt:   &survey.Password{Message: "onOffice API secret:"},
			Validate: survey.Required,
		})
	}

	answers := struct {
		Token  string `survey:"token"`
		Secret string `survey:"secret"`
	}{Token: creds.Token, Secret: creds.Secret}
	if err := survey.Ask(questions, &answers); err != nil {
		return creds, fmt.Errorf("failed to read credentials: %w", err)
	}

	creds = onoffice.Credentials{Token: answers.Token, Secret: answers.Secret}
	if err := creds.Validate(); err != nil {
		return creds, errors.Join(errors.New("invalid credentials"), err)
	}
	return creds, nil
}
