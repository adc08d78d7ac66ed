package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/casamais/casamais-backend/api/responses"
	"github.com/casamais/casamais-backend/internal/users"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/casamais/casamais-backend/pkg/logger"
)

const (
	msgTooManyAttempts = "Muitas tentativas de login, aguarde e tente novamente"
	maxLoginBodyBytes  = 64 << 10
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy is a fixed window with separate budgets per client IP
// and per login e-mail. A zero limit disables that dimension.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "auth"
	}
	return AuthRateLimitPolicy{
		name:       name,
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

func (p AuthRateLimitPolicy) key(scope, value string) string {
	return fmt.Sprintf("casamais:rate_limit:%s:%s:%s", p.name, scope, value)
}

// bucket is one counter a request is charged against.
type bucket struct {
	scope string
	value string
	limit int
}

// AuthRateLimit throttles login attempts. It is a no-op when the policy is
// disabled or no store is configured.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var buckets []bucket
			if ip := clientIP(r); policy.ipLimit > 0 && ip != "" {
				buckets = append(buckets, bucket{scope: "ip", value: ip, limit: policy.ipLimit})
			}
			if policy.emailLimit > 0 && r.Body != nil {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxLoginBodyBytes))
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
				if email := users.NormalizeEmail(extractEmail(body)); email != "" {
					buckets = append(buckets, bucket{scope: "email", value: hashValue(email), limit: policy.emailLimit})
				}
			}

			for _, b := range buckets {
				count, err := store.IncrWithTTL(ctx, policy.key(b.scope, b.value), policy.window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if count > int64(b.limit) {
					respondRateLimited(ctx, logg, w, policy, b, count)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthRateLimitPolicy, b bucket, count int64) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          b.scope,
			"key":            b.value,
			"policy":         policy.name,
			"attempts":       count,
			"limit":          b.limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(policy.window.Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, msgTooManyAttempts))
}

func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

// hashValue keeps raw e-mails out of Redis keys and logs.
func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
