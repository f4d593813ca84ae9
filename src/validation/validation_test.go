package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name   string   `json:"name" validate:"required"`
	Weight *float64 `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Nested struct {
		City string `json:"city" validate:"required"`
	} `json:"headquarters"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var p payload
		p.Name = "Starship"
		p.Nested.City = "Hawthorne"
		assert.Nil(t, Struct(p))
	})
	t.Run("json field names", func(t *testing.T) {
		negative := -1.0
		err := Struct(payload{Weight: &negative})

		var verr *Error
		if assert.True(t, errors.As(err, &verr)) {
			assert.ElementsMatch(t, []string{
				"name is required",
				"weight must be greater than or equal to 0",
				"headquarters.city is required",
			}, verr.Messages)
		}
	})
}
