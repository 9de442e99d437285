package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/innobrain/onoffice-structure/internal/model"
)

func intPtr(i int) *int { return &i }

func snapshot() model.ModuleCollection {
	return model.NewModuleCollection(
		&model.Module{
			Key:   model.ModuleEstate,
			Label: "Immobilien",
			Fields: model.NewFieldCollection(
				&model.Field{Key: "objekttitel", Label: "Titel", Type: model.FieldTypeVarChar, Length: intPtr(80)},
				&model.Field{
					Key: "kaltmiete", Label: "Kaltmiete", Type: model.FieldTypeFloat,
					Filters: model.NewFieldFilters(
						model.NewFieldFilter("vermarktung", map[string][]string{"vermarktungsart": {"miete"}}),
					),
				},
				&model.Field{
					Key: "ausstattung", Label: "Ausstattung", Type: model.FieldTypeMultiSelect,
					PermittedValues: model.NewPermittedValues(
						model.PermittedValue{Key: "garten", Label: "Garten"},
						model.PermittedValue{Key: "keller", Label: "Keller"},
					),
				},
			),
		},
		&model.Module{
			Key:    model.ModuleAddress,
			Label:  "Adressen",
			Fields: model.NewFieldCollection(&model.Field{Key: "Name", Label: "Name", Type: model.FieldTypeVarChar}),
		},
	)
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := get(t, NewHandler(snapshot(), nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["modules"])
}

func TestListModules(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(snapshot(), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/modules", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []ModuleSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []ModuleSummary{
		{Key: "estate", Label: "Immobilien", Fields: 3},
		{Key: "address", Label: "Adressen", Fields: 1},
	}, list)
}

func TestShowModule(t *testing.T) {
	h := NewHandler(snapshot(), nil)

	t.Run("plain by default", func(t *testing.T) {
		rec, body := get(t, h, "/modules/estate")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "estate", body["key"])
		assert.Len(t, body["fields"], 3)
	})

	t.Run("where filters fields", func(t *testing.T) {
		_, body := get(t, h, "/modules/estate?where.vermarktungsart=kauf")
		fields := body["fields"].(map[string]any)
		assert.NotContains(t, fields, "kaltmiete")
		assert.Contains(t, fields, "objekttitel")

		_, body = get(t, h, "/modules/estate?where.vermarktungsart=miete")
		assert.Contains(t, body["fields"], "kaltmiete")
	})

	t.Run("rules", func(t *testing.T) {
		_, body := get(t, h, "/modules/estate?format=rules")
		assert.Equal(t, "string|max:80|nullable", body["objekttitel"])
		assert.Equal(t, "in:garten,keller", body["ausstattung.*"])

		_, body = get(t, h, "/modules/estate?format=rules&nullable=false")
		assert.Equal(t, "string|max:80", body["objekttitel"])
	})

	t.Run("prompt with required override", func(t *testing.T) {
		_, body := get(t, h, "/modules/estate?format=prompt&required=objekttitel")
		assert.Equal(t, "object", body["type"])
		assert.Equal(t, []any{"objekttitel"}, body["required"])
	})

	t.Run("jsonschema", func(t *testing.T) {
		_, body := get(t, h, "/modules/estate?format=jsonschema&descriptions=0")
		assert.Equal(t, "estate", body["title"])
		assert.NotContains(t, body, "description")
	})
}

func TestShowField(t *testing.T) {
	h := NewHandler(snapshot(), nil)

	rec, body := get(t, h, "/modules/estate/fields/objekttitel?format=jsonschema")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "objekttitel")

	rec, body = get(t, h, "/modules/estate/fields/fehlt")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", body["code"])
}

func TestErrors(t *testing.T) {
	h := NewHandler(snapshot(), nil)
	tests := []struct {
		target string
		status int
	}{
		{"/modules/marketplace", http.StatusNotFound},
		{"/modules/task", http.StatusNotFound},
		{"/modules/estate?format=xml", http.StatusBadRequest},
		{"/modules/estate?format=plain&drop_empty=maybe", http.StatusBadRequest},
		{"/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec, body := get(t, h, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "error", body["error"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHandler(snapshot(), zap.New(core))

	get(t, h, "/modules/estate")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/modules/estate", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestServer_Serve(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv, err := New(DefaultConfig(listener.Addr().String()), NewHandler(snapshot(), nil), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNew_Validates(t *testing.T) {
	_, err := New(DefaultConfig(":0"), nil, nil)
	assert.Error(t, err)

	_, err = New(DefaultConfig(""), http.NotFoundHandler(), nil)
	assert.Error(t, err)
}
