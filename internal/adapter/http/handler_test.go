package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	adapter "github.com/dariasel12/palindrome-project/internal/adapter/http"
	"github.com/dariasel12/palindrome-project/internal/adapter/sqlite"
	"github.com/dariasel12/palindrome-project/internal/app"
	"github.com/dariasel12/palindrome-project/internal/domain"
)

// noopPublisher is a no-op EventPublisher for tests.
type noopPublisher struct{}

func (p *noopPublisher) Publish(_ context.Context, _ domain.Event, _ domain.Entry) error {
	return nil
}

// newTestServer creates a full-stack httptest.Server with SQLite in-memory.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	svc := app.NewEntryService(repo, &noopPublisher{})

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("palindrome", "0.1.0"))
	adapter.Register(api, svc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

// doRequest performs an HTTP request with context (avoids noctx linter).
func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}

	return resp
}

// mustGenerate calls generate-string with the given body and decodes the response.
func mustGenerate(t *testing.T, srv *httptest.Server, body string) adapter.GenerateStringResponse {
	t.Helper()

	resp := doRequest(t, http.MethodPost, srv.URL+"/palindrome/generate-string", body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var out adapter.GenerateStringResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode generate response: %v", err)
	}

	return out
}

// --- Generate ---

func TestGenerate_Palindrome(t *testing.T) {
	srv := newTestServer(t)
	out := mustGenerate(t, srv, `{"palindrome":true,"length":5}`)

	if out.ID == "" {
		t.Error("ID should not be empty")
	}
	if len(out.Result) != 5 {
		t.Errorf("len(Result) = %d, want 5", len(out.Result))
	}
	if !domain.IsPalindrome(out.Result) {
		t.Errorf("Result %q is not a palindrome", out.Result)
	}
}

func TestGenerate_NonPalindrome(t *testing.T) {
	srv := newTestServer(t)
	out := mustGenerate(t, srv, `{"palindrome":false,"length":10}`)

	if len(out.Result) != 10 {
		t.Errorf("len(Result) = %d, want 10", len(out.Result))
	}
	if domain.IsPalindrome(out.Result) {
		t.Errorf("Result %q is unexpectedly a palindrome", out.Result)
	}
}

func TestGenerate_DefaultLength(t *testing.T) {
	srv := newTestServer(t)
	out := mustGenerate(t, srv, `{"palindrome":true}`)

	if len(out.Result) != 6 {
		t.Errorf("len(Result) = %d, want 6", len(out.Result))
	}
	if !domain.IsPalindrome(out.Result) {
		t.Errorf("Result %q is not a palindrome", out.Result)
	}
}

func TestGenerate_BoundaryLengths(t *testing.T) {
	srv := newTestServer(t)

	for _, length := range []int{1, 30} {
		out := mustGenerate(t, srv, fmt.Sprintf(`{"palindrome":true,"length":%d}`, length))
		if len(out.Result) != length {
			t.Errorf("len(Result) = %d, want %d", len(out.Result), length)
		}
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"length zero", `{"palindrome":true,"length":0}`},
		{"length exceeds maximum", `{"palindrome":true,"length":31}`},
		{"non-integer length", `{"palindrome":true,"length":"abc"}`},
		{"missing palindrome", `{"length":5}`},
		{"non-boolean palindrome", `{"palindrome":"yes","length":5}`},
		{"non-palindrome of length one", `{"palindrome":false,"length":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, srv.URL+"/palindrome/generate-string", tc.body)
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
			}
		})
	}
}

// --- Retrieve ---

func TestRetrieve(t *testing.T) {
	srv := newTestServer(t)
	created := mustGenerate(t, srv, `{"palindrome":true,"length":6}`)

	resp := doRequest(t, http.MethodGet, srv.URL+"/palindrome/retrieve-string/"+created.ID, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var out adapter.RetrieveStringResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if out.Result != created.Result {
		t.Errorf("Result = %q, want %q", out.Result, created.Result)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/palindrome/retrieve-string/non-existent-id", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	var problem huma.ErrorModel
	if err := json.NewDecoder(resp.Body).Decode(&problem); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if problem.Detail != "ID not found" {
		t.Errorf("Detail = %q, want %q", problem.Detail, "ID not found")
	}
}

func TestRetrieve_EmptyID(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/palindrome/retrieve-string/", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

// --- Misc ---

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/healthz", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestOpenAPI_ListsOperations(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/openapi.json", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	for _, want := range []string{"generate-string", "retrieve-string", "/palindrome/retrieve-string/{id}"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("openapi document missing %q", want)
		}
	}
}
