package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pedal/internal/engine"
	"pedal/internal/models"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	log := zaptest.NewLogger(t)
	reg := engine.NewRegistry(engine.Sample(engine.SampleSeed, engine.SampleRows), time.Hour)
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	h := NewHandler(reg, engine.NewLoader(log), store, log, Options{PreviewLimit: 20})
	return NewServer(h, log)
}

type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies []*http.Cookie
}

func (c *client) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	if got := rec.Result().Cookies(); len(got) > 0 {
		c.cookies = got
	}
	return rec
}

func (c *client) postJSON(path, body string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, echo.MIMEApplicationJSON, strings.NewReader(body))
}

func (c *client) upload(name, content string) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(c.t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())
	return c.do(http.MethodPost, "/api/dataset", mw.FormDataContentType(), &buf)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}
	rec := c.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetDatasetSample(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}
	rec := c.do(http.MethodGet, "/api/dataset", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	sum := decode[models.DatasetSummary](t, rec)
	assert.Equal(t, engine.SampleSource, sum.Source)
	assert.Equal(t, 100, sum.Rows)
	require.Len(t, sum.Columns, 8)
	assert.Equal(t, models.ColumnInfo{Name: "date", Kind: "date"}, sum.Columns[0])
	assert.Equal(t, models.ColumnInfo{Name: "gender", Kind: "categorical"}, sum.Columns[2])
	assert.NotEmpty(t, c.cookies)
}

func TestUploadIsPerSession(t *testing.T) {
	e := newTestServer(t)
	alice := &client{t: t, e: e}
	bob := &client{t: t, e: e}

	rec := alice.upload("mine.csv", "city,temp\nOslo,4\nLima,19\nRome,NA\n")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sum := decode[models.DatasetSummary](t, rec)
	assert.Equal(t, "mine.csv", sum.Source)
	assert.Equal(t, 2, sum.Rows)

	sum = decode[models.DatasetSummary](t, alice.do(http.MethodGet, "/api/dataset", "", nil))
	assert.Equal(t, "mine.csv", sum.Source)

	sum = decode[models.DatasetSummary](t, bob.do(http.MethodGet, "/api/dataset", "", nil))
	assert.Equal(t, engine.SampleSource, sum.Source)

	rec = alice.do(http.MethodDelete, "/api/dataset", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, engine.SampleSource, decode[models.DatasetSummary](t, rec).Source)
}

func TestUploadRejected(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"ragged", "bad.csv", "a,b\n1,2\n3\n"},
		{"all missing", "empty.csv", "a,b\n1,\nNA,2\n"},
		{"format", "notes.pdf", "%PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &client{t: t, e: newTestServer(t)}
			rec := c.upload(tt.file, tt.content)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	c := &client{t: t, e: newTestServer(t)}
	rec := c.do(http.MethodPost, "/api/dataset", echo.MIMEApplicationJSON, strings.NewReader("{}"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadDropsNaNRows(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}

	rec := c.upload("nan.csv", "a,b\n1,2\nNAN,3\n4,5\n")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[models.DatasetSummary](t, rec).Rows)

	rec = c.postJSON("/api/charts/scatter/render", `{"x":"a","y":"b"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fig := decode[map[string]any](t, rec)
	assert.Equal(t, []any{1.0, 4.0}, fig["data"].(map[string]any)["a"])

	rec = c.upload("inf.csv", "a,b\n1,2\ninf,3\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestGetRows(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}

	page := decode[models.RowsPage](t, c.do(http.MethodGet, "/api/dataset/rows", "", nil))
	assert.Equal(t, 20, page.Limit)
	assert.Len(t, page.Data, 20)
	assert.Equal(t, 100, page.Total)
	assert.Len(t, page.Columns, 8)

	page = decode[models.RowsPage](t, c.do(http.MethodGet, "/api/dataset/rows?limit=10&offset=95", "", nil))
	assert.Len(t, page.Data, 5)
	assert.Equal(t, 95, page.Offset)

	page = decode[models.RowsPage](t, c.do(http.MethodGet, "/api/dataset/rows?offset=500", "", nil))
	assert.Empty(t, page.Data)
}

func TestDescribe(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}
	rec := c.do(http.MethodGet, "/api/dataset/describe", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode[[]models.ColumnStats](t, rec)
	require.Len(t, stats, 4)
	names := make([]string, len(stats))
	for i, s := range stats {
		names[i] = s.Column
		assert.Equal(t, 100, s.Count)
	}
	assert.Equal(t, []string{"branch", "salary", "balance", "percentage"}, names)
	require.NotNil(t, stats[0].Min)
	assert.Equal(t, 1.0, *stats[0].Min)
	assert.Equal(t, 5.0, *stats[0].Max)
}

func TestGetDistinct(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}
	rec := c.do(http.MethodGet, "/api/dataset/columns/gender/distinct", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []string{"Male", "Female"}, decode[[]string](t, rec))

	rec = c.do(http.MethodGet, "/api/dataset/columns/age/distinct", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCharts(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}
	rec := c.do(http.MethodGet, "/api/charts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[[]models.ChartTypeInfo](t, rec)
	require.Len(t, list, 18)
	assert.Equal(t, "Area", list[0].Label)
	assert.NotEmpty(t, list[0].Description)
}

func TestResolveChart(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}

	rec := c.postJSON("/api/charts/bar/resolve", `{"x":"branch","y":"salary","color":"gender"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ready struct {
		Status string `json:"status"`
		Keys   []string
		Config struct {
			Type   string         `json:"type"`
			Params map[string]any `json:"params"`
		} `json:"config"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ready))
	assert.Equal(t, models.StatusReady, ready.Status)
	assert.Equal(t, []string{"color", "theme", "title", "x", "y"}, ready.Keys)
	assert.Equal(t, "bar", ready.Config.Type)
	assert.Equal(t, "default", ready.Config.Params["theme"])

	rec = c.postJSON("/api/charts/polar-bar/resolve", `{"x":"salary"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	awaiting := decode[map[string]any](t, rec)
	assert.Equal(t, models.StatusAwaitingInput, awaiting["status"])
	assert.Equal(t, []any{"y"}, awaiting["missing"])
	assert.NotContains(t, awaiting, "config")
}

func TestResolveChartWrapCountBounds(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}
	for n, body := range map[float64]string{
		1: `{"x":"branch","y":"salary","facet_column":"job","facet_wrap_count":1}`,
		6: `{"x":"branch","y":"salary","facet_column":"job","facet_wrap_count":6}`,
	} {
		rec := c.postJSON("/api/charts/bar/resolve", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[map[string]any](t, rec)
		params := got["config"].(map[string]any)["params"].(map[string]any)
		assert.Equal(t, n, params["facet_wrap_count"])
	}

	rec := c.postJSON("/api/charts/bar/resolve", `{"x":"branch","y":"salary","facet_column":"job"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "facet_wrap_count")
}

func TestResolveChartErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"stale column", "/api/charts/scatter/resolve", `{"x":"salary","y":"age"}`, http.StatusConflict},
		{"invalid option", "/api/charts/bar/resolve", `{"x":"branch","y":"salary","bar_mode":"stack"}`, http.StatusBadRequest},
		{"wrap count zero", "/api/charts/bar/resolve", `{"x":"branch","y":"salary","facet_column":"job","facet_wrap_count":0}`, http.StatusBadRequest},
		{"wrap count seven", "/api/charts/bar/resolve", `{"x":"branch","y":"salary","facet_column":"job","facet_wrap_count":7}`, http.StatusBadRequest},
		{"facet order", "/api/charts/box/resolve", `{"x":"job","y":"salary","facet_column":"gender","facet_order":["Other"]}`, http.StatusBadRequest},
		{"unknown type", "/api/charts/radar/resolve", `{}`, http.StatusNotFound},
		{"bad json", "/api/charts/bar/resolve", `{"x":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &client{t: t, e: newTestServer(t)}
			rec := c.postJSON(tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRenderChart(t *testing.T) {
	c := &client{t: t, e: newTestServer(t)}

	rec := c.postJSON("/api/charts/scatter/render", `{"x":"salary","y":"balance","color":"gender"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get(echo.HeaderContentType))
	fig := decode[map[string]any](t, rec)
	assert.Equal(t, "plotly", fig["template"])

	rec = c.postJSON("/api/charts/scatter/render?format=svg", `{"x":"salary","y":"balance"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = c.postJSON("/api/charts/scatter/render", `{"x":"salary"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = c.postJSON("/api/charts/pie/render?format=svg", `{"x":"job","y":"salary"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = c.postJSON("/api/charts/pie/render?format=png", `{"x":"job","y":"salary"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
