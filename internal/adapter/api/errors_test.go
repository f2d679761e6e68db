package api

import (
	"errors"
	"sphere-core/internal/domain/entity"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := map[entity.Kind]int{
		entity.KindValidation:          fiber.StatusUnprocessableEntity,
		entity.KindSignatureInvalid:    fiber.StatusBadRequest,
		entity.KindUpstreamRejected:    fiber.StatusBadGateway,
		entity.KindUpstreamUnavailable: fiber.StatusServiceUnavailable,
		entity.KindNotConfigured:       fiber.StatusServiceUnavailable,
		entity.KindInternal:            fiber.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, statusFor(kind), kind.String())
	}
}

func TestDetailForHidesInternals(t *testing.T) {
	err := errors.New("pq: password authentication failed for user sphere")
	assert.Equal(t, entity.ErrInternalServer.Error(), detailFor(entity.KindInternal, err))

	err = entity.E(entity.KindNotConfigured, "openai", entity.ErrProviderNotReady)
	assert.Equal(t, entity.ErrProviderNotReady.Error(), detailFor(entity.KindNotConfigured, err))

	err = entity.E(entity.KindValidation, "bind", errors.New("tasks failed min=1"))
	assert.Equal(t, "tasks failed min=1", detailFor(entity.KindValidation, err))
}
