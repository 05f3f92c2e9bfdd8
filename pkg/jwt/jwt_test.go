package jwt_test

import (
	"testing"

	"github.com/jhoicas/pos-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-para-pruebas-de-tokens"

func TestParse_DevuelveTiendaYRol(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "tienda-1", jwt.RoleSupervisor, "pos-api", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "tienda-1", claims.StoreID)
	assert.Equal(t, jwt.RoleSupervisor, claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	expired, err := jwt.Generate(secret, "u1", "tienda-1", jwt.RoleAdmin, "pos-api", -1)
	require.NoError(t, err)
	noStore, err := jwt.Generate(secret, "u1", "", jwt.RoleAdmin, "pos-api", 5)
	require.NoError(t, err)
	noUser, err := jwt.Generate(secret, "", "tienda-1", jwt.RoleAdmin, "pos-api", 5)
	require.NoError(t, err)
	valid, err := jwt.Generate(secret, "u1", "tienda-1", jwt.RoleAdmin, "pos-api", 5)
	require.NoError(t, err)

	cases := map[string]struct{ secret, token string }{
		"expirado":       {secret, expired},
		"sin tienda":     {secret, noStore},
		"sin usuario":    {secret, noUser},
		"otro secreto":   {"otro-secreto", valid},
		"secreto vacío":  {"", valid},
		"no es un token": {secret, "abc.def.ghi"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := jwt.Parse(tc.secret, tc.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_SinSecretoFalla(t *testing.T) {
	_, err := jwt.Generate("", "u1", "tienda-1", jwt.RoleCashier, "pos-api", 5)
	assert.Error(t, err)
}
