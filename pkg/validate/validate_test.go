package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
)

type contactForm struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Kind  string `json:"kind" validate:"oneof=a b"`
	Plain string
}

func TestStructUsesJSONNames(t *testing.T) {
	err := Struct(contactForm{Email: "nope", Kind: "c"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]string{
		"name":  "is required",
		"email": "must be a valid email",
		"kind":  "must be one of [a b]",
	}, typed.Details())
}

func TestStructPasses(t *testing.T) {
	assert.NoError(t, Struct(contactForm{Name: "Amina", Email: "amina@example.org", Kind: "a"}))
}
