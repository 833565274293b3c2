// productkey imprime una clave de producto para un email y rol, para entregarla
// fuera de banda a quien se registre como REALTOR o ADMIN.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"realtor-api/internal/domain"
	"realtor-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type keyConfig struct {
	ProductKeySecret string `env:"PRODUCT_KEY_SECRET,required,notEmpty"`
}

func main() {
	emailAddr := flag.String("email", "", "email address the key is issued for")
	rawRole := flag.String("role", string(domain.RoleRealtor), "role the key enables (REALTOR or ADMIN)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	if *emailAddr == "" {
		fmt.Fprintln(os.Stderr, "usage: productkey -email user@example.com [-role REALTOR]")
		os.Exit(2)
	}
	role, ok := domain.ParseRole(*rawRole)
	if !ok {
		log.Fatalf("invalid role %q", *rawRole)
	}

	var cfg keyConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	keys, err := service.NewProductKeyService(service.NewBcryptHasher(bcrypt.DefaultCost), cfg.ProductKeySecret)
	if err != nil {
		log.Fatalf("product key service: %v", err)
	}
	key, err := keys.Generate(*emailAddr, role)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	fmt.Println(key)
}
