package httpapi

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wellness-backend/internal/config"
	"github.com/tbourn/go-wellness-backend/internal/http/middleware"
	"github.com/tbourn/go-wellness-backend/internal/llm"
	"github.com/tbourn/go-wellness-backend/internal/repo"
)

func testConfig() config.Config {
	return config.Config{
		APIBasePath:    "/api",
		CORS:           config.CORSConfig{AllowedOrigins: nil}, // allow-all branch
		Security:       config.SecurityConfig{EnableHSTS: false},
		OTEL:           config.OTELConfig{ServiceName: "test-svc"},
		IdempotencyTTL: time.Hour,
	}
}

// newRouter wires the full stack over an in-memory store and a gateway
// without a model, so every language-model call takes its fallback path.
func newRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gw := llm.New(nil, config.LLMConfig{Timeout: time.Second})
	RegisterRoutes(r, repo.NewMemStore(), gw, cfg)
	return r
}

func serve(r *gin.Engine, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	r := newRouter(t, testConfig())

	w := serve(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	w = serve(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	w = serve(r, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"not_found"`) {
		t.Fatalf("GET /nope expected 404 not_found, got %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/health", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"http://example.com"}
	r := newRouter(t, cfg)

	w := serve(r, http.MethodGet, "/health", "", "Origin", "http://example.com")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	w = serve(r, http.MethodGet, "/health", "", "Origin", "http://evil.example")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected ACAO for foreign origin: %q", got)
	}
}

func TestRegisterRoutes_GzipWhenAccepted(t *testing.T) {
	r := newRouter(t, testConfig())

	w := serve(r, http.MethodGet, "/api/quotes/random", "", "Accept-Encoding", "gzip")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/quotes/random = %d", w.Code)
	}
	if got := w.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q; want gzip", got)
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	var q struct{ Text, Author string }
	if err := json.NewDecoder(zr).Decode(&q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Text == "" || q.Author == "" {
		t.Fatalf("empty quote: %+v", q)
	}
}

func TestRegisterRoutes_SwaggerToggle(t *testing.T) {
	off := newRouter(t, testConfig())
	if w := serve(off, http.MethodGet, "/swagger/doc.json", ""); w.Code != http.StatusNotFound {
		t.Fatalf("swagger disabled: expected 404, got %d", w.Code)
	}

	cfg := testConfig()
	cfg.SwaggerEnabled = true
	on := newRouter(t, cfg)
	w := serve(on, http.MethodGet, "/swagger/doc.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("swagger enabled: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"/chat/{userId}/message"`) {
		t.Fatalf("doc.json missing chat route: %s", w.Body.String())
	}
}

func TestRegisterRoutes_PrivateRoutesNotCached(t *testing.T) {
	r := newRouter(t, testConfig())

	if w := serve(r, http.MethodGet, "/api/chat/9", ""); w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("chat response must be no-store, got %q", w.Header().Get("Cache-Control"))
	}
	w := serve(r, http.MethodGet, "/api/thought-posts", "")
	if w.Header().Get("Cache-Control") == "no-store" {
		t.Fatalf("community board must stay cacheable")
	}
	if w.Header().Get("ETag") == "" {
		t.Fatalf("expected ETag on community board")
	}
}

func Test_privatePrefixes(t *testing.T) {
	got := privatePrefixes("/")
	if got[0] != "/users" {
		t.Fatalf("root base: got %v", got)
	}
	got = privatePrefixes("/api")
	if got[3] != "/api/chat" {
		t.Fatalf("api base: got %v", got)
	}
}

func TestRegisterRoutes_BadIdempotencyKey(t *testing.T) {
	r := newRouter(t, testConfig())

	w := serve(r, http.MethodPost, "/api/chat/1/message", `{"message":"hi"}`,
		middleware.HeaderIdempotencyKey, "has spaces!")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "bad_idempotency_key") {
		t.Fatalf("expected 400 bad_idempotency_key, got %d %s", w.Code, w.Body.String())
	}
}

// Without a configured model the direct endpoints answer with fallbacks and
// a chat send fails without touching the stored conversation.
func TestRegisterRoutes_UnconfiguredModelFlow(t *testing.T) {
	r := newRouter(t, testConfig())

	w := serve(r, http.MethodPost, "/api/users", `{"username":"river","password":"s3cret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create user = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/api/chat", `{"userId":1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create chat = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/api/chat/1/message", `{"message":"hello"}`)
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "llm_unavailable") {
		t.Fatalf("send = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/api/chat/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get chat = %d", w.Code)
	}
	var conv struct {
		Messages []json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &conv); err != nil {
		t.Fatalf("decode conversation: %v", err)
	}
	if len(conv.Messages) != 0 {
		t.Fatalf("failed send must not persist turns, got %d", len(conv.Messages))
	}

	w = serve(r, http.MethodGet, "/api/quotes/generate?context=exams", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), llm.FallbackQuote.Text) {
		t.Fatalf("generate quote = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/api/journal/analyze", `{"text":"long day"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"neutral"`) {
		t.Fatalf("analyze = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_SQLStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st, err := repo.NewSQLStore(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	r := gin.New()
	RegisterRoutes(r, st, llm.New(nil, config.LLMConfig{Timeout: time.Second}), testConfig())

	w := serve(r, http.MethodPost, "/api/mood-entries", `{"userId":3,"mood":"calm","note":"walked"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create mood = %d %s", w.Code, w.Body.String())
	}
	w = serve(r, http.MethodGet, "/api/mood-entries/3", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"walked"`) {
		t.Fatalf("list moods = %d %s", w.Code, w.Body.String())
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := serve(r, http.MethodGet, path, "")
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}
}
