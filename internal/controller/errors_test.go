package controller

import (
	"errors"
	"fmt"
	"testing"

	"ai-gateway-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"image not found", fmt.Errorf("load: %w", service.ErrImageNotFound), fiber.StatusNotFound},
		{"file not found", service.ErrFileNotFound, fiber.StatusNotFound},
		{"invalid path", service.ErrInvalidPath, fiber.StatusBadRequest},
		{"invalid log kind", service.ErrInvalidLogKind, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var fe *fiber.Error
			require.True(t, errors.As(mapServiceError(tc.err), &fe))
			assert.Equal(t, tc.code, fe.Code)
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		raw := errors.New("db down")
		assert.Same(t, raw, mapServiceError(raw))
	})
}
