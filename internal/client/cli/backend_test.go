package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/kv"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeBackend mimics the storefront REST API closely enough for the CLI.
type fakeBackend struct {
	mu         sync.Mutex
	categories []map[string]any
	products   []map[string]any
	users      map[string]map[string]any // username -> record incl. "pass"
	down       bool
	lastUserID string
	lastBody   map[string]any
	deleted    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		categories: []map[string]any{
			{"id": 1, "name": "Marvel", "slug": "marvel", "description": "Heroes"},
			{"id": 2, "name": "DC", "slug": "dc"},
		},
		products: []map[string]any{
			{"id": 10, "name": "Iron Man", "price": 1999.5, "category": "marvel"},
			{"id": 11, "name": "Hulk", "price": "12", "category": "marvel"},
			{"id": 20, "name": "Batman", "price": nil, "category": "dc"},
		},
		users: map[string]map[string]any{
			"alice": {"id": 1, "username": "alice", "pass": "secret", "role": "customer", "name": "Alice"},
			"admin": {"id": 2, "username": "admin", "pass": "admin", "role": "admin"},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	guard := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.down {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{"detail": "down"})
				return
			}
			h(w, r)
		}
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return guard(func(w http.ResponseWriter, r *http.Request) {
			uid := r.Header.Get("x-user-id")
			if uid == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Falta x-user-id"})
				return
			}
			if u, ok := b.users[uid]; !ok || u["role"] != "admin" {
				writeJSON(w, http.StatusForbidden, map[string]any{"detail": "Solo admin"})
				return
			}
			b.lastUserID = uid
			b.lastBody = nil
			_ = json.NewDecoder(r.Body).Decode(&b.lastBody)
			h(w, r)
		})
	}

	mux.HandleFunc("GET /{$}", guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "API OK"})
	}))
	mux.HandleFunc("GET /index", guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"categories": b.categories, "featured": b.products[:1]})
	}))
	mux.HandleFunc("GET /categories", guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.categories)
	}))
	mux.HandleFunc("GET /categories/slug/{slug}", guard(func(w http.ResponseWriter, r *http.Request) {
		for _, c := range b.categories {
			if c["slug"] == r.PathValue("slug") {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Categoría no encontrada"})
	}))
	mux.HandleFunc("GET /categories/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		for _, c := range b.categories {
			if idString(c["id"]) == r.PathValue("id") {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Categoría no encontrada"})
	}))
	mux.HandleFunc("GET /products", guard(func(w http.ResponseWriter, r *http.Request) {
		cat := r.URL.Query().Get("category")
		out := []map[string]any{}
		for _, p := range b.products {
			if cat == "" || p["category"] == cat {
				out = append(out, p)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}))
	mux.HandleFunc("GET /products/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range b.products {
			if idString(p["id"]) == r.PathValue("id") {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Producto no encontrado"})
	}))
	mux.HandleFunc("POST /auth/login", guard(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username string `json:"username"`
			Pass     string `json:"pass"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Username == "" || in.Pass == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Faltan campos"})
			return
		}
		u, ok := b.users[in.Username]
		if !ok || u["pass"] != in.Pass {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Credenciales inválidas"})
			return
		}
		out := map[string]any{}
		for k, v := range u {
			if k != "pass" {
				out[k] = v
			}
		}
		writeJSON(w, http.StatusOK, out)
	}))
	mux.HandleFunc("POST /products", admin(func(w http.ResponseWriter, r *http.Request) {
		p := map[string]any{"id": 99}
		for k, v := range b.lastBody {
			p[k] = v
		}
		b.products = append(b.products, p)
		writeJSON(w, http.StatusCreated, p)
	}))
	mux.HandleFunc("PUT /products/{id}", admin(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.lastBody)
	}))
	mux.HandleFunc("DELETE /products/{id}", admin(func(w http.ResponseWriter, r *http.Request) {
		b.deleted = append(b.deleted, "product:"+r.PathValue("id"))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}))
	mux.HandleFunc("POST /categories", admin(func(w http.ResponseWriter, r *http.Request) {
		c := map[string]any{"id": 7}
		for k, v := range b.lastBody {
			c[k] = v
		}
		writeJSON(w, http.StatusCreated, c)
	}))
	mux.HandleFunc("PUT /categories/{id}", admin(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.lastBody)
	}))
	mux.HandleFunc("DELETE /categories/{id}", admin(func(w http.ResponseWriter, r *http.Request) {
		b.deleted = append(b.deleted, "category:"+r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	return mux
}

func (b *fakeBackend) setDown(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.down = down
}

func (b *fakeBackend) field(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.lastBody[key]
	return v, ok
}

func (b *fakeBackend) userID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUserID
}

func (b *fakeBackend) deletedIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.deleted...)
}

func (b *fakeBackend) get(key string) any {
	v, _ := b.field(key)
	return v
}

func idString(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	}
	return ""
}

type testApp struct {
	*App
	backend *fakeBackend
	repo    *kv.MemoryRepository
	out     *bytes.Buffer
}

// newTestApp wires an App to a fake backend over real HTTP and an in-memory
// store. input is what the user types at prompts.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	api, err := client.NewHTTPClient(srv.URL, 5*time.Second, nil)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = srv.URL
	cfg.OnlineCheckInterval = 20 * time.Millisecond

	repo := kv.NewMemoryRepository()
	a := newApp(cfg, logging.Nop(), api, repo)

	out := &bytes.Buffer{}
	a.out = out
	a.reader = bufio.NewReader(strings.NewReader(input))
	t.Cleanup(func() { _ = a.Close(t.Context()) })

	return &testApp{App: a, backend: backend, repo: repo, out: out}
}

// stubPassword makes getPassword return pw without touching the terminal.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := getPassword
	getPassword = func(w io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = old })
}
