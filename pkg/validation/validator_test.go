package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string  `json:"email" validate:"required,email"`
	Name  string  `json:"name" validate:"max=3"`
	Price float64 `json:"price" validate:"gte=0"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	err := Struct(sample{Email: "nope", Name: "long name", Price: -1})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at most 3 characters long", details["name"])
	assert.Equal(t, "must be greater than or equal to 0", details["price"])
}

func TestToDetailsJSONAndFallback(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("x")))
	assert.Nil(t, ToDetails(nil))
}
