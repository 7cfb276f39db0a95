package state

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/x3alone/01blog/internal/client/api"
	"github.com/x3alone/01blog/internal/client/notify"
	"github.com/x3alone/01blog/internal/client/session"
	"github.com/x3alone/01blog/internal/models"
)

func testToken(t *testing.T, id int64, username string, role models.Role) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, _ := json.Marshal(map[string]any{"sub": username, "id": id, "role": role})
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".c2ln"
}

// stubBackend serves canned collections and records every mutating call so
// tests can assert exactly what reached the network. Routes listed in fail
// answer with that status instead.
type stubBackend struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]int

	posts    []models.Post
	users    []models.User
	reports  []models.Report
	comments []models.Comment
}

func newStubBackend() *stubBackend {
	return &stubBackend{calls: map[string]int{}, fail: map[string]int{}}
}

// key is "METHOD /pattern", e.g. "POST /api/posts/{id}/like".
func (b *stubBackend) failWith(key string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[key] = status
}

func (b *stubBackend) callCount(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *stubBackend) handle(key string, respond func(w http.ResponseWriter)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		b.calls[key]++
		status := b.fail[key]
		b.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		respond(w)
	}
}

func (b *stubBackend) list(key string, data func() any) http.HandlerFunc {
	return b.handle(key, func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		b.mu.Lock()
		defer b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(data())
	})
}

func (b *stubBackend) ok(key string) http.HandlerFunc {
	return b.handle(key, func(w http.ResponseWriter) { w.WriteHeader(http.StatusOK) })
}

func (b *stubBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", b.list("GET /api/posts", func() any { return b.posts }))
		r.Delete("/posts/{id}", b.ok("DELETE /api/posts/{id}"))
		r.Post("/posts/{id}/like", b.ok("POST /api/posts/{id}/like"))
		r.Delete("/posts/{id}/like", b.ok("DELETE /api/posts/{id}/like"))

		r.Get("/users/all", b.list("GET /api/users/all", func() any { return b.users }))
		r.Put("/users/{id}/promote", b.ok("PUT /api/users/{id}/promote"))
		r.Put("/users/{id}/demote", b.ok("PUT /api/users/{id}/demote"))
		r.Put("/users/{id}/ban", b.ok("PUT /api/users/{id}/ban"))

		r.Get("/reports", b.list("GET /api/reports", func() any { return b.reports }))
		r.Delete("/reports/{id}", b.ok("DELETE /api/reports/{id}"))

		r.Get("/comments/post/{id}", b.list("GET /api/comments/post/{id}", func() any { return b.comments }))
		r.Post("/comments", b.handle("POST /api/comments", func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.Comment{ID: 100, Content: "stored"})
		}))
		r.Delete("/comments/{id}", b.ok("DELETE /api/comments/{id}"))
	})
	return r
}

type testEnv struct {
	backend *stubBackend
	client  *api.Client
	session *session.Publisher
	coord   *Coordinator
	toasts  *toastRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := newStubBackend()
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "state.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	sess := session.NewPublisher(store)

	rec := &toastRecorder{}
	n := notify.New()
	n.Subscribe(rec.record)

	log := zap.NewNop()
	return &testEnv{
		backend: backend,
		client:  api.New(srv.URL, &http.Client{}, sess, log),
		session: sess,
		coord:   NewCoordinator(n, log),
		toasts:  rec,
	}
}

func (e *testEnv) signIn(t *testing.T, id int64, username string, role models.Role) {
	t.Helper()
	if err := e.session.SetToken(testToken(t, id, username, role)); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
}
