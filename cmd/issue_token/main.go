// issue_token emite un Bearer token para un cliente de la API firmado con JWT_SECRET.
//
// Uso: go run ./cmd/issue_token -user tienda-web [-minutes 1440]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Recomendador-api/pkg/config"
	"github.com/jhoicas/Recomendador-api/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "identificador del cliente (obligatorio)")
	minutes := flag.Int("minutes", 60*24, "vigencia del token en minutos")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "falta -user")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido; la API no exige token")
		os.Exit(1)
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *userID, cfg.JWT.Issuer, *minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
