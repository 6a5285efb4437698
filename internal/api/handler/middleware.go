package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"
	"farmingpro/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthAccount ctxKey = "AUTH_ACCOUNT"
var ctxKeyAuthAdmin ctxKey = "AUTH_ADMIN"

func bearer(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.Split(header, "Bearer")
	if len(parts) != 2 {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// Authn will NOT terminate an unauthenticated request, ResolveValidAccount does.
func Authn(verifier interface {
	ValidateInitData(dataStr string) (*models.AccountFromAuth, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearer(c)
			if token == "" {
				return next(c)
			}

			identity, err := verifier.ValidateInitData(token)
			if err != nil {
				// a client error, but the details stay on our side
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid init data"), errorx.Authn), -1)
				return nil
			}

			ctx := context.WithValue(c.Request().Context(), ctxKeyAuthAccount, identity)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveValidAccount(ctx context.Context, container *do.Injector) (*models.Account, error) {
	identity, ok := ctx.Value(ctxKeyAuthAccount).(*models.AccountFromAuth)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	serviceAccount, err := do.Invoke[*services.ServiceAccount](container)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	account, err := serviceAccount.FindOrCreate(ctx, identity)
	if err != nil {
		return nil, translate(err)
	}
	return account, nil
}

func AdminAuthn(verifier interface {
	ValidateAdmin(token string) (*services.AdminClaims, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verifier.ValidateAdmin(bearer(c))
			if err != nil {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("unauthorized"), errorx.Authn), -1)
				return nil
			}

			ctx := context.WithValue(c.Request().Context(), ctxKeyAuthAdmin, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RateLimit caps mutating calls per authenticated account.
func RateLimit(limiter interfaces.Limiter, perMinute int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Request().Context().Value(ctxKeyAuthAccount).(*models.AccountFromAuth)
			if !ok {
				return next(c)
			}

			err := limiter.Allow(c.Request().Context(), services.LimitKeyAccountMutation(identity.ID), redis_rate.PerMinute(perMinute))
			if err != nil {
				//nolint:errcheck
				httpx.Abort(c, translate(fmt.Errorf("account %d: %w", identity.ID, err)), -1)
				return nil
			}
			return next(c)
		}
	}
}
