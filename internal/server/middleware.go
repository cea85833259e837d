package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/profile"
)

type ctxKey int

const ctxKeyProfile ctxKey = iota

// authMiddleware resolves the bearer token to a profile. Event streams
// cannot set headers from a browser, so ?token= is accepted too.
func authMiddleware(logger *slog.Logger, profiles *profile.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			p, err := profiles.FromToken(r.Context(), token)
			if err != nil {
				writeServiceError(w, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyProfile, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func currentProfile(r *http.Request) profile.Profile {
	return r.Context().Value(ctxKeyProfile).(profile.Profile)
}

func currentPlayer(r *http.Request) lobby.Player {
	p := currentProfile(r)
	return lobby.Player{UID: p.ID, Username: p.Username, AvatarURL: p.AvatarURL}
}

const adminUser = "admin"

func adminAuthMiddleware(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != adminUser ||
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="geoduel admin"`)
				writeError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// limiterIdle is how long an address keeps its bucket without requests.
const limiterIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimit applies a token bucket per client address. RealIP runs
// earlier, so RemoteAddr already reflects proxies.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		visitors = map[string]*visitor{}
		swept    = time.Now()
	)

	allow := func(addr string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(swept) > limiterIdle {
			for k, v := range visitors {
				if now.Sub(v.lastSeen) > limiterIdle {
					delete(visitors, k)
				}
			}
			swept = now
		}

		v, ok := visitors[addr]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(limit, burst)}
			visitors[addr] = v
		}
		v.lastSeen = now
		return v.limiter.Allow()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := r.RemoteAddr
			if host, _, err := net.SplitHostPort(addr); err == nil {
				addr = host
			}
			if !allow(addr) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
