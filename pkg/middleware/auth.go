package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/kitchen-stock/pkg/auth"
	"github.com/tair/kitchen-stock/pkg/response"
)

type contextKey string

const (
	actorIDKey contextKey = "actor_id"
	roleKey    contextKey = "role"
)

// TokenValidator is satisfied by *auth.Manager.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Authenticator guards routes with a bearer token and optional role list.
type Authenticator struct {
	validator TokenValidator
}

func NewAuthenticator(validator TokenValidator) *Authenticator {
	return &Authenticator{validator: validator}
}

// Require validates the token and, when roles are given, checks that the
// caller holds one of them.
func (a *Authenticator) Require(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Fail(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Fail(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := a.validator.ValidateToken(parts[1])
			if err != nil {
				response.Fail(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if len(roles) > 0 && !hasRole(claims.Role, roles) {
				response.Fail(w, http.StatusForbidden, "Insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), actorIDKey, claims.Subject)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// ActorID returns the authenticated subject, or "" outside a guarded route.
func ActorID(ctx context.Context) string {
	id, _ := ctx.Value(actorIDKey).(string)
	return id
}

// Role returns the authenticated role.
func Role(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// WithActor injects an identity; used by tests and internal callers.
func WithActor(ctx context.Context, actorID, role string) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, actorID)
	return context.WithValue(ctx, roleKey, role)
}
