package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/user"
)

var (
	contextIdentityKey = "identity"
	contextUserKey     = "user"
)

// authMiddleware resolves the bearer token into a verified external identity
// via the identity provider and stores it on the request context. It does not
// require a User row to exist: self-registration runs against a bare identity.
func authMiddleware(idp core.IdentityProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := extractToken(ctx)
			if token == "" {
				return errMissingToken
			}
			ident, err := idp.VerifyToken(ctx.Request().Context(), token)
			if err != nil {
				return errUnauthorized
			}
			ctx.Set(contextIdentityKey, ident)
			return next(ctx)
		}
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(ctx echo.Context) string {
	bearer := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimSpace(bearer[len("Bearer "):])
	}
	return ""
}

func getContextIdentity(ctx echo.Context) (core.Identity, error) {
	if ident, ok := ctx.Get(contextIdentityKey).(core.Identity); ok {
		return ident, nil
	}
	return core.Identity{}, errUnauthorized
}

// getContextUser loads the User row matching the request identity, caching it
// on the context. Returns user.ErrNotFound for identities that have not
// registered yet.
func getContextUser(ctx echo.Context, svc user.ServiceInterface) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return user.User{}, err
	}

	usr, err := svc.GetByUID(ctx.Request().Context(), ident.UID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by identity")
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}
