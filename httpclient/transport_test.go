package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/fetchkit/hook"
)

func mustTransport(t *testing.T, cfg Config) *Transport {
	t.Helper()
	tr, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return tr
}

func proceed(t *testing.T, opts hook.Options, method, path string) hook.Result {
	t.Helper()
	b, err := hook.NewBefore(opts)
	if err != nil {
		t.Fatalf("NewBefore: %v", err)
	}
	return b.Run(hook.NewRequest(method, path))
}

func TestTransport_Send_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/posts" {
			t.Errorf("expected /posts, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("name"); got != "testing" {
			t.Errorf("name = %q, want testing", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"testing","content":null}`))
	}))
	defer srv.Close()

	tr := mustTransport(t, Config{BaseURL: srv.URL})
	resp, err := tr.Send(context.Background(), proceed(t, hook.Options{Query: hook.ValuesOf("name", "testing")}, http.MethodGet, "/posts"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 || !resp.OK {
		t.Errorf("status = %d ok = %v", resp.StatusCode, resp.OK)
	}
	m, ok := resp.Data.(map[string]any)
	if !ok || m["name"] != "testing" {
		t.Errorf("Data = %v", resp.Data)
	}
}

func TestTransport_Send_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		if got := r.Header.Get("X-Client"); got != "fetchkit" {
			t.Errorf("default header X-Client = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := mustTransport(t, Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Client": "fetchkit", "Content-Type": "text/plain"},
	})
	resp, err := tr.Send(context.Background(), proceed(t, hook.Options{JSON: map[string]string{"name": "n"}}, http.MethodPost, "/posts"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
}

func TestTransport_UserAgent(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	res := func() hook.Result { return proceed(t, hook.Options{}, http.MethodGet, "/") }
	if _, err := mustTransport(t, Config{BaseURL: srv.URL}).Send(context.Background(), res()); err != nil {
		t.Fatal(err)
	}
	custom := Config{BaseURL: srv.URL, Headers: map[string]string{"User-Agent": "custom/1"}}
	if _, err := mustTransport(t, custom).Send(context.Background(), res()); err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 || !strings.HasPrefix(got[0], "fetchkit/") || got[1] != "custom/1" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestTransport_Send_CancelledNeverDials(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	tr := mustTransport(t, Config{BaseURL: srv.URL})
	res := proceed(t, hook.Options{BearerRequired: true}, http.MethodGet, "/auth/posts")

	resp, err := tr.Send(context.Background(), res)
	if resp != nil {
		t.Errorf("resp = %v, want nil", resp)
	}
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if !IsCancelled(err) {
		t.Error("IsCancelled should match")
	}
	if hits.Load() != 0 {
		t.Errorf("server received %d requests, want 0", hits.Load())
	}
}

func TestTransport_Send_StatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"not valid body"}`))
	}))
	defer srv.Close()

	tr := mustTransport(t, Config{BaseURL: srv.URL})
	resp, err := tr.Send(context.Background(), proceed(t, hook.Options{}, http.MethodPost, "/postform"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OK {
		t.Error("OK = true for 400")
	}
	if string(resp.Raw) != `{"error":"not valid body"}` {
		t.Errorf("Raw = %s", resp.Raw)
	}
}

func TestTransport_Send_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tr := mustTransport(t, Config{BaseURL: srv.URL})
	resp, err := tr.Send(context.Background(), proceed(t, hook.Options{}, http.MethodGet, "/old"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Raw) != "moved" {
		t.Errorf("Raw = %q, want moved", resp.Raw)
	}
}

func TestTransport_Send_RedirectLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer srv.Close()

	tr := mustTransport(t, Config{BaseURL: srv.URL, MaxRedirects: 3})
	_, err := tr.Send(context.Background(), proceed(t, hook.Options{}, http.MethodGet, "/loop"))
	if !HasCode(err, ErrCodeConnection) {
		t.Errorf("err = %v, want connection error", err)
	}
}

func TestTransport_Send_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	tr := mustTransport(t, Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := tr.Send(context.Background(), proceed(t, hook.Options{}, http.MethodGet, "/slow"))
	if !HasCode(err, ErrCodeTimeout) {
		t.Errorf("err = %v, want timeout error", err)
	}
}

func TestTransport_Send_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := mustTransport(t, Config{BaseURL: url})
	_, err := tr.Send(context.Background(), proceed(t, hook.Options{}, http.MethodGet, "/"))
	if !HasCode(err, ErrCodeConnection) {
		t.Errorf("err = %v, want connection error", err)
	}
}

func TestTransport_ResolveURL(t *testing.T) {
	tr := mustTransport(t, Config{BaseURL: "http://localhost:3000/"})
	tests := []struct {
		path, want string
	}{
		{"/posts", "http://localhost:3000/posts"},
		{"posts?x=1", "http://localhost:3000/posts?x=1"},
		{"https://example.com/a", "https://example.com/a"},
	}
	for _, tt := range tests {
		if got := tr.ResolveURL(tt.path); got != tt.want {
			t.Errorf("ResolveURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestWithRoundTripper(t *testing.T) {
	var seen string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.URL.String()
		return httptest.NewRecorder().Result(), nil
	})
	tr, err := New(Config{BaseURL: "http://api.test"}, WithRoundTripper(rt))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := tr.Send(context.Background(), proceed(t, hook.Options{}, http.MethodGet, "/x")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if seen != "http://api.test/x" {
		t.Errorf("seen = %q", seen)
	}
}
