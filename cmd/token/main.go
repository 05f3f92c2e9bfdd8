// Command token emite un Bearer token de operador para pruebas locales y terminales POS:
//
//	go run ./cmd/token -user u1 -store tienda-1 -role cajero
package main

import (
	"flag"
	"fmt"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	var userID, storeID, role string
	var expMinutes int
	flag.StringVar(&userID, "user", "", "ID del operador")
	flag.StringVar(&storeID, "store", "", "ID de la tienda")
	flag.StringVar(&role, "role", "cajero", "rol: admin, supervisor o cajero")
	flag.IntVar(&expMinutes, "exp", 0, "expiración en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar configuración")
	}
	if expMinutes <= 0 {
		expMinutes = cfg.JWT.Expiration
	}

	issuer := auth.NewTokenIssuer(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: expMinutes,
		Issuer:     cfg.JWT.Issuer,
	})
	tok, err := issuer.Issue(userID, storeID, role)
	if err != nil {
		log.Fatal().Err(err).Msg("emitir token")
	}
	fmt.Println(tok)
}
