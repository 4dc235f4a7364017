package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/pkg/validator"
)

// Un request bien formado pasa sin errores de campo.
func TestValidateStruct_RequestValido(t *testing.T) {
	errs := validator.ValidateStruct(dto.LoginRequest{
		Email:    "admin@tienda.co",
		Password: "secreta123",
	})
	assert.Empty(t, errs)
}

// Campos requeridos ausentes y valores fuera del oneof se reportan con su tag.
func TestValidateStruct_CamposInvalidos(t *testing.T) {
	errs := validator.ValidateStruct(dto.RecordTransactionRequest{
		Type: "TRANSFER", // fuera de INCREASE|DECREASE
	})
	require.NotEmpty(t, errs)

	tags := map[string]string{}
	for _, e := range errs {
		tags[e.Field] = e.Tag
	}
	assert.Equal(t, "oneof", tags["Type"])
	assert.Equal(t, "required", tags["ProductID"])
}

// Email malformado falla el tag email.
func TestValidateStruct_EmailInvalido(t *testing.T) {
	errs := validator.ValidateStruct(dto.LoginRequest{
		Email:    "no-es-un-email",
		Password: "x",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Tag)
}
