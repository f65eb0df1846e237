package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"
)

// IdempotencyStore remembers write responses by idempotency key so a retried
// POST replays the first answer instead of submitting a second extrinsic.
type IdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type idempotencyEntry struct {
	status    int
	headers   http.Header
	body      []byte
	expiresAt time.Time
	done      chan struct{} // closed once the first request finished
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	TTL     time.Duration // How long to keep results (default 24h)
	Cleanup time.Duration // Cleanup interval (default 1h)
}

// NewIdempotencyStore creates a store and starts its cleanup loop
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	store := &IdempotencyStore{
		entries:  make(map[string]*idempotencyEntry),
		ttl:      cfg.TTL,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop(cfg.Cleanup)

	return store
}

// Stop stops the cleanup goroutine and waits for it to exit
func (s *IdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

func (s *IdempotencyStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup(time.Now())
		case <-s.stopChan:
			return
		}
	}
}

func (s *IdempotencyStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if isDone(entry) && entry.expiresAt.Before(now) {
			delete(s.entries, key)
		}
	}
}

// Len returns the number of remembered keys
func (s *IdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func isDone(e *idempotencyEntry) bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// fingerprint hashes the caller, key and request. The caller is the signing
// account named in the body, falling back to the client address.
func fingerprint(r *http.Request, idempotencyKey string, body []byte) string {
	var payload struct {
		From string `json:"from"`
	}
	caller := clientKey(r)
	if json.Unmarshal(body, &payload) == nil && payload.From != "" {
		caller = payload.From
	}

	h := sha256.New()
	for _, part := range []string{caller, idempotencyKey, r.Method, r.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// recorder captures the response for replay
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// replay writes the cached response. Headers already set by outer
// middleware (request ID, rate limit) describe this request and are kept.
func replay(w http.ResponseWriter, e *idempotencyEntry) {
	h := w.Header()
	for k, v := range e.headers {
		if _, ok := h[k]; ok {
			continue
		}
		h[k] = append([]string(nil), v...)
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(e.status)
	_, _ = w.Write(e.body)
}

// Idempotency returns middleware that honors the Idempotency-Key header on
// POST requests. Concurrent duplicates wait for the first to finish.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idempotencyKey := r.Header.Get("Idempotency-Key")
			if r.Method != http.MethodPost || idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := fingerprint(r, idempotencyKey, body)

			store.mu.Lock()
			entry, exists := store.entries[key]
			if exists && (!isDone(entry) || entry.expiresAt.After(time.Now())) {
				store.mu.Unlock()
				select {
				case <-entry.done:
					replay(w, entry)
				case <-r.Context().Done():
					w.WriteHeader(http.StatusServiceUnavailable)
				}
				return
			}

			entry = &idempotencyEntry{done: make(chan struct{})}
			store.entries[key] = entry
			store.mu.Unlock()

			rec := &recorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				store.mu.Lock()
				if p := recover(); p != nil {
					// Forget the key so a retry runs again; waiters see a 500.
					delete(store.entries, key)
					entry.status = http.StatusInternalServerError
					close(entry.done)
					store.mu.Unlock()
					panic(p)
				}
				entry.status = rec.status
				entry.headers = rec.Header().Clone()
				entry.body = rec.body.Bytes()
				entry.expiresAt = time.Now().Add(store.ttl)
				close(entry.done)
				store.mu.Unlock()
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
