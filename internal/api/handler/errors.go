package handler

import (
	"errors"

	"farmingpro/internal/pkg/limiter"
	"farmingpro/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
)

// translate maps domain failures onto the envelope kinds. Anything unknown is
// reported as a service error.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, limiter.ErrRateLimited) {
		return errorx.Wrap(err, errorx.RateLimiting)
	}

	var domain *services.Error
	if !errors.As(err, &domain) {
		return errorx.Wrap(err, errorx.Service)
	}

	switch domain.Kind {
	case services.KindNotFound:
		return errorx.Wrap(err, errorx.NotExist)
	case services.KindValidation:
		return errorx.Wrap(err, errorx.Validation)
	default:
		return errorx.Wrap(err, errorx.Invalid)
	}
}
