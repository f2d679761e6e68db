package api

import (
	"errors"
	"sphere-core/internal/domain/entity"
	"sphere-core/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(kind entity.Kind) int {
	switch kind {
	case entity.KindValidation:
		return fiber.StatusUnprocessableEntity
	case entity.KindSignatureInvalid:
		return fiber.StatusBadRequest
	case entity.KindUpstreamRejected:
		return fiber.StatusBadGateway
	case entity.KindUpstreamUnavailable, entity.KindNotConfigured:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// detailFor is the client-facing message. Vendor error text stays in the logs.
func detailFor(kind entity.Kind, err error) string {
	switch kind {
	case entity.KindValidation:
		var e *entity.Error
		if errors.As(err, &e) {
			return e.Err.Error()
		}
		return entity.ErrInvalidRequest.Error()
	case entity.KindSignatureInvalid:
		return entity.ErrInvalidSignature.Error()
	case entity.KindUpstreamRejected:
		return "upstream service rejected the request"
	case entity.KindUpstreamUnavailable:
		return "upstream service temporarily unavailable"
	case entity.KindNotConfigured:
		switch {
		case errors.Is(err, entity.ErrGatewayNotReady):
			return entity.ErrGatewayNotReady.Error()
		case errors.Is(err, entity.ErrProviderNotReady):
			return entity.ErrProviderNotReady.Error()
		}
		return "service is not configured"
	default:
		return entity.ErrInternalServer.Error()
	}
}

// ErrorHandler renders every error returned by a handler as {"detail": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
	}

	kind := entity.KindOf(err)
	status := statusFor(kind)
	log := logger.FromContext(c.UserContext(), logger.L())
	if status >= fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
	} else {
		log.Info("request rejected",
			zap.String("path", c.Path()),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(fiber.Map{"detail": detailFor(kind, err)})
}
