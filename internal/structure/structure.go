// Package structure retrieves the field configuration of an onOffice account
// and returns it as the domain model.
package structure

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/innobrain/onoffice-structure/internal/model"
	"github.com/innobrain/onoffice-structure/internal/onoffice"
	"github.com/innobrain/onoffice-structure/internal/parser"
	"github.com/innobrain/onoffice-structure/internal/payload"
)

// ErrMissingCredentials is returned by GetModules when no credentials were
// set with ForClient.
var ErrMissingCredentials = errors.New("missing credentials: call ForClient first")

// Fetcher fetches raw module records. *onoffice.Client implements it.
type Fetcher interface {
	Fields(ctx context.Context, creds onoffice.Credentials, req onoffice.FieldsRequest) (*payload.Object, error)
}

// FieldConfiguration fetches and parses module field configurations.
type FieldConfiguration struct {
	fetcher  Fetcher
	parser   *parser.Parser
	language onoffice.Language
	logger   *zap.Logger
}

// Option configures a FieldConfiguration.
type Option func(*FieldConfiguration)

// WithLanguage sets the label language.
func WithLanguage(l onoffice.Language) Option {
	return func(fc *FieldConfiguration) {
		fc.language = l
	}
}

// WithLogger sets the logger, which is also handed to the parser.
func WithLogger(logger *zap.Logger) Option {
	return func(fc *FieldConfiguration) {
		fc.logger = logger
	}
}

// NewFieldConfiguration creates a FieldConfiguration backed by fetcher.
func NewFieldConfiguration(fetcher Fetcher, opts ...Option) *FieldConfiguration {
	fc := &FieldConfiguration{
		fetcher:  fetcher,
		language: onoffice.DefaultLanguage,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(fc)
	}
	fc.parser = parser.New(parser.WithLogger(fc.logger))
	return fc
}

// RetrieveForClient fetches the given modules, or all known modules when
// none are given, and parses them. Upstream errors are returned unchanged
// apart from wrapping.
func (fc *FieldConfiguration) RetrieveForClient(ctx context.Context, creds onoffice.Credentials, only ...model.ModuleKey) (model.ModuleCollection, error) {
	names := make([]string, len(only))
	for i, k := range only {
		names[i] = k.String()
	}

	raw, err := fc.fetcher.Fields(ctx, creds, onoffice.FieldsRequest{
		Modules:  model.ModuleValues(names...),
		Language: fc.language,
	})
	if err != nil {
		return model.ModuleCollection{}, fmt.Errorf("failed to fetch field configuration: %w", err)
	}

	modules := fc.parser.Parse(raw).Only(only...)
	fc.logger.Info("retrieved field configuration",
		zap.Int("modules", modules.Len()),
		zap.String("language", fc.language.String()),
	)
	return modules, nil
}

// Structure is the entry point for retrieving modules of one client.
type Structure struct {
	config *FieldConfiguration
	creds  *onoffice.Credentials
}

// New creates a Structure without credentials.
func New(config *FieldConfiguration) *Structure {
	return &Structure{config: config}
}

// ForClient returns a copy of s bound to creds.
func (s *Structure) ForClient(creds onoffice.Credentials) *Structure {
	return &Structure{config: s.config, creds: &creds}
}

// GetModules retrieves the modules of the bound client, restricted to only
// when given.
func (s *Structure) GetModules(ctx context.Context, only ...model.ModuleKey) (model.ModuleCollection, error) {
	if s.creds == nil {
		return model.ModuleCollection{}, ErrMissingCredentials
	}
	return s.config.RetrieveForClient(ctx, *s.creds, only...)
}
