package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/textblock/internal/showcase"
	"github.com/matzehuels/textblock/pkg/cache"
	"github.com/matzehuels/textblock/pkg/errors"
	"github.com/matzehuels/textblock/pkg/pipeline"
)

func newTestServer(t *testing.T, maxBody int64) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(fc, nil, logger)
	srv := httptest.NewServer(newServer(runner, logger, maxBody).routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestServeHealth(t *testing.T) {
	srv := newTestServer(t, 0)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if id := resp.Header.Get(headerRequestID); uuid.Validate(id) != nil {
		t.Errorf("%s = %q, want a UUID", headerRequestID, id)
	}
}

func TestServeRequestIDReused(t *testing.T) {
	srv := newTestServer(t, 0)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(headerRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(headerRequestID); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(headerRequestID, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get(headerRequestID); got == "not-a-uuid" || uuid.Validate(got) != nil {
		t.Errorf("invalid incoming id should be replaced, got %q", got)
	}
}

func TestServeRender(t *testing.T) {
	srv := newTestServer(t, 0)

	resp := post(t, srv.URL+"/render", "application/toml", besideDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if body := readBody(t, resp); body != "XY\n Z\n" {
		t.Errorf("body = %q", body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get(headerWidth) != "2" || resp.Header.Get(headerHeight) != "2" {
		t.Errorf("size headers = %s x %s", resp.Header.Get(headerWidth), resp.Header.Get(headerHeight))
	}
	if resp.Header.Get(headerCache) != "miss" {
		t.Errorf("first render %s = %q", headerCache, resp.Header.Get(headerCache))
	}

	again := post(t, srv.URL+"/render", "application/toml", besideDoc)
	if again.Header.Get(headerCache) != "hit" {
		t.Errorf("second render %s = %q", headerCache, again.Header.Get(headerCache))
	}

	refreshed := post(t, srv.URL+"/render?refresh=true", "application/toml", besideDoc)
	if refreshed.Header.Get(headerCache) != "miss" {
		t.Errorf("refresh %s = %q", headerCache, refreshed.Header.Get(headerCache))
	}
}

func TestServeRenderFormats(t *testing.T) {
	srv := newTestServer(t, 0)
	jsonDoc := `{"root": {"kind": "stack", "align": "right", "children": [
		{"kind": "text", "text": "abc"},
		{"kind": "text", "text": "d"}
	]}}`

	tests := []struct {
		query       string
		contentType string
		want        string
	}{
		{"", "text/plain", "abc\n  d\n"},
		{"?format=json", "application/json", `"lines":["abc","  d"]`},
		{"?format=dot", "text/vnd.graphviz", "digraph G {"},
	}

	for _, tt := range tests {
		t.Run("format"+tt.query, func(t *testing.T) {
			resp := post(t, srv.URL+"/render"+tt.query, "application/json; charset=utf-8", jsonDoc)
			body := readBody(t, resp)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %s", ct, tt.contentType)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body = %q, want it to contain %q", body, tt.want)
			}
		})
	}
}

func TestServeRenderErrors(t *testing.T) {
	srv := newTestServer(t, 64)

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		status      int
		code        errors.Code
	}{
		{"bad format", "/render?format=png", "application/toml", besideDoc[:40], http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"syntax error", "/render", "application/toml", "[root", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"layout error", "/render", "application/json", `{"root": {"kind": "blob"}}`, http.StatusBadRequest, errors.ErrCodeInvalidLayout},
		{"negative size", "/render", "application/json", `{"root": {"kind": "empty", "width": -1}}`, http.StatusBadRequest, errors.ErrCodeInvalidDimension},
		{"oversized area", "/render", "application/json", `{"root": {"kind": "empty", "width": 4000, "height": 4000}}`, http.StatusBadRequest, errors.ErrCodeInvalidLayout},
		{"oversized width", "/render", "application/json", `{"root":{"kind":"empty","width":2000000000,"height":1}}`, http.StatusBadRequest, errors.ErrCodeInvalidLayout},
		{"empty body", "/render", "application/toml", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unsupported type", "/render", "application/xml", "<root/>", http.StatusUnsupportedMediaType, errors.ErrCodeUnsupported},
		{"too large", "/render", "application/toml", strings.Repeat("#", 100), http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body.Code != string(tt.code) {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Error)
			}
			if body.RequestID == "" || body.Error == "" {
				t.Errorf("incomplete error body: %+v", body)
			}
		})
	}
}

func TestServeDemo(t *testing.T) {
	srv := newTestServer(t, 0)

	resp, err := http.Get(srv.URL + "/demo/boxes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body := readBody(t, resp); body != showcase.Boxes().String()+"\n" {
		t.Errorf("body = %q", body)
	}

	missing, err := http.Get(srv.URL + "/demo/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown demo status = %d", missing.StatusCode)
	}

	list, err := http.Get(srv.URL + "/demo")
	if err != nil {
		t.Fatal(err)
	}
	defer list.Body.Close()
	var names struct {
		Demos []string `json:"demos"`
	}
	if err := json.NewDecoder(list.Body).Decode(&names); err != nil {
		t.Fatal(err)
	}
	if strings.Join(names.Demos, ",") != strings.Join(showcase.Names(), ",") {
		t.Errorf("demos = %v", names.Demos)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidDimension, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidPath, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusUnsupportedMediaType},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := httpStatus(tt.err); got != tt.want {
			t.Errorf("httpStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
