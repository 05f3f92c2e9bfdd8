package auth

import (
	"strings"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenIssuer emite tokens de operador (usuario, tienda, rol) firmados con el secreto de la API.
// Los usuarios viven fuera de este servicio; el emisor solo valida la forma de los claims.
type TokenIssuer struct {
	cfg JWTConfig
}

// NewTokenIssuer construye el emisor.
func NewTokenIssuer(cfg JWTConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue genera el token. Rechaza roles desconocidos para no emitir tokens que RequireRole nunca aceptaría.
func (i *TokenIssuer) Issue(userID, storeID, role string) (string, error) {
	userID, storeID, role = strings.TrimSpace(userID), strings.TrimSpace(storeID), strings.TrimSpace(role)
	if userID == "" || storeID == "" {
		return "", domain.Invalidf("user y store son obligatorios")
	}
	switch role {
	case jwt.RoleAdmin, jwt.RoleSupervisor, jwt.RoleCashier:
	default:
		return "", domain.Invalidf("rol desconocido: %q", role)
	}
	if i.cfg.ExpMinutes <= 0 {
		return "", domain.Invalidf("la expiración debe ser positiva")
	}
	return jwt.Generate(i.cfg.Secret, userID, storeID, role, i.cfg.Issuer, i.cfg.ExpMinutes)
}
