package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/user"
)

// staffMiddleware restricts a route to registered, active school members.
func staffMiddleware(svc user.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				if errors.Cause(err) == user.ErrNotFound {
					return errHttpForbidden
				}
				return err
			}
			if !usr.IsActive {
				return errAccountDeactivated
			}
			if !usr.IsStaff() {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// principalMiddleware restricts a route to registered, active principals.
func principalMiddleware(svc user.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				if errors.Cause(err) == user.ErrNotFound {
					return errHttpForbidden
				}
				return err
			}
			if !usr.IsActive {
				return errAccountDeactivated
			}
			if !usr.IsPrincipal() {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
