package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/server/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRecoveryRendersInternalError(t *testing.T) {
	h := middleware.Recovery(logger.NewDefault("test"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("fixture exploded")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/posts", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body %q: %v", rr.Body.String(), err)
	}
	if body.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q", body.Error.Code)
	}
	if strings.Contains(body.Error.Message, "fixture exploded") {
		t.Error("panic value leaked into the response")
	}
}

func TestRecoveryPassThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	middleware.Recovery(logger.NewDefault("test"))(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(middleware.HeaderRequestID)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if seen == "" || rr.Header().Get(middleware.HeaderRequestID) != seen {
		t.Fatalf("generated id: request %q, response %q", seen, rr.Header().Get(middleware.HeaderRequestID))
	}

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, "from-client")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(middleware.HeaderRequestID); got != "from-client" {
		t.Errorf("echoed id = %q", got)
	}
}

func TestCORS(t *testing.T) {
	var cfg middleware.CORSConfig
	cfg.ApplyDefaults()
	h := middleware.CORS(&cfg)(okHandler)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{"simple", http.MethodGet, "http://localhost:5173", http.StatusOK, "http://localhost:5173"},
		{"preflight", http.MethodOptions, "http://localhost:5173", http.StatusNoContent, "http://localhost:5173"},
		{"no origin", http.MethodGet, "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/posts", http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestCORSRestricted(t *testing.T) {
	cfg := middleware.CORSConfig{
		AllowedOrigins:   []string{"https://app.example.com"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
	}
	h := middleware.CORS(&cfg)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got %q", got)
	}

	req.Header.Set("Origin", "https://app.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("missing credentials header")
	}
	if rr.Header().Get("Access-Control-Allow-Headers") != "Authorization" {
		t.Errorf("allow headers = %q", rr.Header().Get("Access-Control-Allow-Headers"))
	}
	if rr.Header().Get("Access-Control-Allow-Methods") != "" {
		t.Error("no methods configured, header should be absent")
	}
}

func TestRequestLogger(t *testing.T) {
	log := logger.NewDefault("test")
	for _, path := range []string{"/posts", "/health"} {
		called := false
		h := middleware.RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusCreated)
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, http.NoBody))
		if !called || rr.Code != http.StatusCreated {
			t.Errorf("%s: called=%v status=%d", path, called, rr.Code)
		}
	}
}

type flushRecorder struct {
	*httptest.ResponseRecorder
	flushed bool
}

func (f *flushRecorder) Flush() { f.flushed = true }

func TestRequestLoggerKeepsFlusher(t *testing.T) {
	fr := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}
	h := middleware.RequestLogger(logger.NewDefault("test"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.(http.Flusher).Flush()
	}))
	h.ServeHTTP(fr, httptest.NewRequest(http.MethodGet, "/preview-pdf", http.NoBody))
	if !fr.flushed {
		t.Error("Flush was not delegated")
	}
}

func TestBodySizeLimit(t *testing.T) {
	h := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, tt := range []struct {
		size int
		want int
	}{{512, http.StatusOK}, {2048, http.StatusRequestEntityTooLarge}} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("x", tt.size))))
		if rr.Code != tt.want {
			t.Errorf("%d bytes: status = %d, want %d", tt.size, rr.Code, tt.want)
		}
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+">")
				next.ServeHTTP(w, r)
				order = append(order, "<"+name)
			})
		}
	}
	h := middleware.Chain(mark("a"), mark("b"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "h")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	want := []string{"a>", "b>", "h", "<b", "<a"}
	if !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}
