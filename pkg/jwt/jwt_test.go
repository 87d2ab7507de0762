package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/coolbreeze-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUID    = "google-sub-1234567890"
	testEmail  = "cliente@example.com"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "coolbreeze-test"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUID, testEmail, "rider", testUserID, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUID, claims.UID)
	assert.Equal(t, testUID, claims.Subject)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, "rider", claims.Role)
	assert.Equal(t, testUserID, claims.UserID)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUID, testEmail, "admin", testUserID, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUID, testEmail, "admin", testUserID, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", testUID, testEmail, "admin", testUserID, testIssuer, 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "cualquier.token.aqui")
	assert.Error(t, err)
}
