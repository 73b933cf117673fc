package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "admin@nubifica.com", "Administrador", "facturacion-api", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin@nubifica.com", claims.Email)
	assert.Equal(t, "Administrador", claims.Role)
	assert.NotEmpty(t, claims.ID, "cada token lleva un jti")
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "a@b.co", "Usuario", "x", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otra-clave", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "a@b.co", "Usuario", "x", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, tok)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "a@b.co", "Usuario", "x", 5)
	assert.Error(t, err)
}
