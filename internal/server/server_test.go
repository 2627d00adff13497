package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbscaffold/internal/artifact"
	"github.com/koustreak/dbscaffold/internal/codegen"
	"github.com/koustreak/dbscaffold/internal/filestore"
	"github.com/koustreak/dbscaffold/internal/logger"
	"github.com/koustreak/dbscaffold/internal/scaffold"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.Generator == nil {
		cfg.Generator = codegen.New(codegen.Config{})
	}
	cfg.Logger = logger.Nop()
	ts := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/generate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

const userRequest = `{
  "database_type": "MySql",
  "options": {"data_annotations": true},
  "artifacts": ["model", "dto", "controller"],
  "tables": [{
    "name": "user",
    "columns": [
      {"name": "id", "type": "BIGINT", "primary_key": true},
      {"name": "user_name", "type": "VARCHAR", "size": 50},
      {"name": "is_active", "type": "TINYINT", "nullable": true}
    ]
  }]
}`

func TestHealthAndDatabaseTypes(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/v1/database-types")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"MySql", "PostgreSql", "SqlServer"}, body["database_types"])
}

func TestTemplateEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/v1/templates/controller")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(data), "{ControllerName}")

	resp, err = http.Get(ts.URL + "/v1/templates/migration")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, data := post(t, ts, userRequest)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var body generateResponse
	require.NoError(t, json.Unmarshal(data, &body))
	assert.NotEmpty(t, body.RunID)
	require.Len(t, body.Results, 1)

	res := body.Results[0]
	assert.Equal(t, "user", res.Table)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Artifacts, 3)
	assert.Equal(t, "user.cs", res.Artifacts[0].FileName)
	assert.Contains(t, res.Artifacts[0].Content, "[StringLength(50)]")
	assert.Equal(t, "dto", res.Artifacts[1].Kind)
	assert.Contains(t, res.Artifacts[1].Content, "public bool? is_active { get; set; }")
	assert.Equal(t, "userController.cs", res.Artifacts[2].FileName)
}

func TestGenerate_PerArtifactErrors(t *testing.T) {
	gen := codegen.New(codegen.Config{Engine: scaffold.NewEngine(scaffold.MapSource{}, nil)})
	ts := newTestServer(t, Config{Generator: gen})

	resp, data := post(t, ts, `{"tables":[{"name":"t","columns":[{"name":"n","type":"INT"}]}],"artifacts":["model","controller"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var body generateResponse
	require.NoError(t, json.Unmarshal(data, &body))
	res := body.Results[0]
	require.Len(t, res.Artifacts, 1)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "controller", res.Errors[0].Kind)
	assert.Equal(t, "not_found", res.Errors[0].ErrKind)
}

func TestGenerate_ErrorStatus(t *testing.T) {
	ts := newTestServer(t, Config{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"tables":`, http.StatusBadRequest},
		{"unknown field", `{"tablez":[]}`, http.StatusBadRequest},
		{"no tables", `{"tables":[]}`, http.StatusBadRequest},
		{"unknown db", `{"database_type":"Oracle","tables":[{"name":"t"}]}`, http.StatusBadRequest},
		{"unknown artifact", `{"artifacts":["entity"],"tables":[{"name":"t"}]}`, http.StatusBadRequest},
		{"blank table name", `{"tables":[{"name":""}]}`, http.StatusBadRequest},
		{"persist without sink", `{"persist":true,"tables":[{"name":"t"}]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, ts, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode, string(data))

			var body errorResponse
			require.NoError(t, json.Unmarshal(data, &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestGenerate_BodyLimit(t *testing.T) {
	ts := newTestServer(t, Config{MaxBodyBytes: 64})

	resp, _ := post(t, ts, userRequest)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestGenerate_Persist(t *testing.T) {
	ctx := context.Background()
	store := filestore.NewMemory()
	sink, err := artifact.NewStoreSink(ctx, store, "out", "")
	require.NoError(t, err)
	ts := newTestServer(t, Config{Sink: sink})

	body := strings.Replace(userRequest, `"database_type"`, `"persist": true, "database_type"`, 1)
	resp, data := post(t, ts, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	objs, err := store.ListObjects(ctx, "out", filestore.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, objs, 3)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.EOF))
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	srv := New(Config{Logger: logger.New(&logger.Config{Level: "info", Format: "json", Output: &buf})})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"path":"/healthz"`)
	assert.Contains(t, buf.String(), `"status":200`)
}
