package auth

import (
	"context"
	"strings"

	"github.com/fekuna/marketplace-catalog-service/internal/apperror"
	"github.com/fekuna/marketplace-catalog-service/internal/model"
	"github.com/labstack/echo/v4"
	"google.golang.org/grpc/metadata"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	metadataUserID   = "x-user-id"
	metadataUserRole = "x-user-role"
)

type UserContext struct {
	UserID string
	Role   string
}

type ctxKey struct{}

func WithUser(ctx context.Context, u UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the caller identity placed by WithUser, falling back to
// incoming gRPC metadata forwarded by the gateway.
func FromContext(ctx context.Context) (UserContext, bool) {
	if u, ok := ctx.Value(ctxKey{}).(UserContext); ok && u.UserID != "" {
		return u, true
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return UserContext{}, false
	}
	u := UserContext{
		UserID: first(md.Get(metadataUserID)),
		Role:   normalizeRole(first(md.Get(metadataUserRole))),
	}
	return u, u.UserID != ""
}

func FromRequest(c echo.Context) (UserContext, bool) {
	h := c.Request().Header
	u := UserContext{
		UserID: strings.TrimSpace(h.Get(HeaderUserID)),
		Role:   normalizeRole(h.Get(HeaderUserRole)),
	}
	return u, u.UserID != ""
}

// RequireUser rejects requests the gateway did not authenticate and stores the
// identity on the request context.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := FromRequest(c)
		if !ok {
			return apperror.Unauthenticated("missing user identity")
		}
		req := c.Request()
		c.SetRequest(req.WithContext(WithUser(req.Context(), u)))
		return next(c)
	}
}

// RequireRole is RequireUser restricted to the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireUser(func(c echo.Context) error {
			u, _ := FromContext(c.Request().Context())
			for _, r := range roles {
				if u.Role == r {
					return next(c)
				}
			}
			return apperror.Forbidden("insufficient role")
		})
	}
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

func normalizeRole(r string) string {
	r = strings.ToLower(strings.TrimSpace(r))
	if r == "" {
		return model.RoleBuyer
	}
	return r
}
