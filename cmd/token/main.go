// token emite un JWT de desarrollo firmado con JWT_SECRET para probar la API.
//
// Uso: go run ./cmd/token -company <uuid> -user <uuid> [-role admin]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/pkg/config"
	"github.com/jhoicas/auditoria-precios/pkg/jwt"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa")
	userID := flag.String("user", "", "ID del usuario")
	role := flag.String("role", entity.RoleAdmin, "admin | vendedor")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if *role != entity.RoleAdmin && *role != entity.RoleVendedor {
		fmt.Fprintf(os.Stderr, "rol desconocido: %q\n", *role)
		os.Exit(2)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, cfg.JWT.Issuer, jwt.Identity{
		UserID:    *userID,
		CompanyID: *companyID,
		Role:      *role,
	}, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
