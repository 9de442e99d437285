package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/innobrain/onoffice-structure/internal/convert"
	"github.com/innobrain/onoffice-structure/internal/model"
)

const wherePrefix = "where."

var (
	errModuleNotFound = errors.New("module not found")
	errFieldNotFound  = errors.New("field not found")
)

// ModuleSummary is one entry of the module listing.
type ModuleSummary struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Fields int    `json:"fields"`
}

type handlers struct {
	modules model.ModuleCollection
}

// NewHandler returns the HTTP API over a fixed set of modules.
func NewHandler(modules model.ModuleCollection, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handlers{modules: modules}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		renderError(w, http.StatusNotFound, errors.New("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		renderError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})

	r.Get("/healthz", h.health)
	r.Route("/modules", func(r chi.Router) {
		r.Get("/", h.listModules)
		r.Get("/{module}", h.showModule)
		r.Get("/{module}/fields/{field}", h.showField)
	})

	return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{"status": "ok", "modules": h.modules.Len()})
}

func (h *handlers) listModules(w http.ResponseWriter, _ *http.Request) {
	out := make([]ModuleSummary, 0, h.modules.Len())
	for key, m := range h.modules.All() {
		out = append(out, ModuleSummary{Key: key, Label: m.Label, Fields: m.Fields.Len()})
	}
	renderJSON(w, http.StatusOK, out)
}

func (h *handlers) showModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.lookupModule(chi.URLParam(r, "module"))
	if err != nil {
		renderError(w, http.StatusNotFound, err)
		return
	}

	strategy, err := strategyFromQuery(r.URL.Query())
	if err != nil {
		renderError(w, http.StatusBadRequest, err)
		return
	}

	criteria := whereCriteria(r.URL.Query())
	if len(criteria) > 0 {
		builder := module.Fields.WhereMatchesFilters()
		for k, v := range criteria {
			builder.Where(k, v)
		}
		module = &model.Module{Key: module.Key, Label: module.Label, Fields: builder.Get()}
	}

	renderJSON(w, http.StatusOK, module.Convert(strategy))
}

func (h *handlers) showField(w http.ResponseWriter, r *http.Request) {
	module, err := h.lookupModule(chi.URLParam(r, "module"))
	if err != nil {
		renderError(w, http.StatusNotFound, err)
		return
	}

	key := chi.URLParam(r, "field")
	field, ok := module.Fields.Field(key)
	if !ok {
		renderError(w, http.StatusNotFound, fmt.Errorf("%w: %q", errFieldNotFound, key))
		return
	}

	strategy, err := strategyFromQuery(r.URL.Query())
	if err != nil {
		renderError(w, http.StatusBadRequest, err)
		return
	}

	renderJSON(w, http.StatusOK, field.Convert(strategy))
}

func (h *handlers) lookupModule(raw string) (*model.Module, error) {
	key, err := model.ParseModuleKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errModuleNotFound, raw)
	}
	module, ok := h.modules.Module(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errModuleNotFound, raw)
	}
	return module, nil
}

// strategyFromQuery reads format, drop_empty, pipe, nullable, descriptions
// and required from q.
func strategyFromQuery(q url.Values) (model.Strategy, error) {
	format := convert.FormatPlain
	if raw := q.Get("format"); raw != "" {
		f, err := convert.ParseFormat(raw)
		if err != nil {
			return nil, err
		}
		format = f
	}

	opts := convert.DefaultOptions()
	flags := []struct {
		name   string
		target *bool
	}{
		{"drop_empty", &opts.DropEmpty},
		{"pipe", &opts.PipeSyntax},
		{"nullable", &opts.IncludeNullable},
		{"descriptions", &opts.IncludeDescriptions},
	}
	for _, flag := range flags {
		if !q.Has(flag.name) {
			continue
		}
		v, err := cast.ToBoolE(q.Get(flag.name))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", flag.name, err)
		}
		*flag.target = v
	}

	if q.Has("required") {
		opts.RequiredFields = splitList(q.Get("required"))
	}

	return convert.New(format, opts)
}

// whereCriteria collects "where.<key>=<value>" parameters.
func whereCriteria(q url.Values) map[string]string {
	criteria := make(map[string]string)
	for name, values := range q {
		if !strings.HasPrefix(name, wherePrefix) || len(values) == 0 {
			continue
		}
		criteria[strings.TrimPrefix(name, wherePrefix)] = values[len(values)-1]
	}
	return criteria
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
