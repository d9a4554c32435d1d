package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grocerly/grocerly-backend/api/responses"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/logger"
	pkgredis "github.com/grocerly/grocerly-backend/pkg/redis"
)

const defaultIdempotencyTTL = 24 * time.Hour

type routeMatcher func(string) bool

type idempotencyRule struct {
	method  string
	matcher routeMatcher
	ttl     time.Duration
}

// Cart and catalog writes replay badly (merges accumulate), so these POSTs
// get response caching when a redis endpoint is configured. Matching runs
// on the URL path: the middleware sits ahead of the mux, so no chi route
// pattern exists yet.
var idempotencyRules = []idempotencyRule{
	{method: http.MethodPost, matcher: matchExact("/products"), ttl: defaultIdempotencyTTL},
	{method: http.MethodPost, matcher: matchExact("/cart/items"), ttl: defaultIdempotencyTTL},
	{method: http.MethodPost, matcher: matchPrefix("/cart/items/from-pending/"), ttl: defaultIdempotencyTTL},
	{method: http.MethodPost, matcher: matchExact("/draft/submit"), ttl: defaultIdempotencyTTL},
}

// cachedResponse is what gets persisted in redis for replay.
type cachedResponse struct {
	Status      int               `json:"status"`
	Body        string            `json:"body"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequestHash string            `json:"request_hash"`
}

// Idempotency replays the stored response when a request repeats the same
// Idempotency-Key with the same body, and rejects the key when the body
// differs. Requests without the header pass through untouched.
func Idempotency(store pkgredis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ttl, tracked := routeTTL(r)
			if !tracked || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			clientKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
			if clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			bodyHash := hashBody(body)
			key := store.IdempotencyKey(r.Method+"|"+r.URL.Path, clientKey)

			stored, getErr := store.Get(r.Context(), key)
			if getErr != nil && !errors.Is(getErr, redis.Nil) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, getErr, "check idempotency"))
				return
			}
			if stored != "" {
				var cached cachedResponse
				if err := json.Unmarshal([]byte(stored), &cached); err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record"))
					return
				}
				if cached.RequestHash != bodyHash {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
					return
				}
				replayResponse(w, cached)
				return
			}

			capture := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(capture, r)

			cached := cachedResponse{
				Status:      capture.statusOrOK(),
				Body:        base64.StdEncoding.EncodeToString(capture.body.Bytes()),
				RequestHash: bodyHash,
			}
			if ct := capture.Header().Get("Content-Type"); ct != "" {
				cached.Headers = map[string]string{"Content-Type": ct}
			}

			payload, marshalErr := json.Marshal(cached)
			if marshalErr != nil {
				logError(r.Context(), logg, "marshal idempotency record", marshalErr)
				return
			}
			if _, setErr := store.SetNX(r.Context(), key, string(payload), ttl); setErr != nil {
				logError(r.Context(), logg, "persist idempotency record", setErr)
			}
		})
	}
}

func routeTTL(r *http.Request) (time.Duration, bool) {
	for _, rule := range idempotencyRules {
		if rule.method != r.Method {
			continue
		}
		if rule.matcher(r.URL.Path) {
			return rule.ttl, true
		}
	}
	return 0, false
}

func matchExact(path string) routeMatcher {
	return func(candidate string) bool {
		return candidate == path
	}
}

func matchPrefix(prefix string) routeMatcher {
	return func(candidate string) bool {
		return strings.HasPrefix(candidate, prefix) && len(candidate) > len(prefix)
	}
}

func replayResponse(w http.ResponseWriter, cached cachedResponse) {
	if ct := cached.Headers["Content-Type"]; ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(cached.Status)
	if decoded, err := base64.StdEncoding.DecodeString(cached.Body); err == nil {
		_, _ = w.Write(decoded)
	}
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (r *responseCapture) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) statusOrOK() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func logError(ctx context.Context, logg *logger.Logger, msg string, err error) {
	if logg == nil || err == nil {
		return
	}
	logg.Error(ctx, msg, err)
}
