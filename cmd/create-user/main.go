package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/casamais/casamais-backend/internal/users"
	"github.com/casamais/casamais-backend/pkg/config"
	"github.com/casamais/casamais-backend/pkg/db"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/casamais/casamais-backend/pkg/logger"
	"github.com/casamais/casamais-backend/pkg/security"
)

const tempPasswordLen = 16

// create-user provisions a staff account. Without -senha a temporary
// password is generated and printed once.
func main() {
	logg := logger.New(logger.Options{ServiceName: "create-user"})

	_ = godotenv.Load()

	nome := flag.String("nome", "", "display name")
	email := flag.String("email", "", "login e-mail")
	senha := flag.String("senha", "", "password (generated when empty)")
	papel := flag.String("papel", "voluntario", "role: admin|coordenacao|voluntario")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "create-user",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	ctx := context.Background()

	password := *senha
	generated := password == ""
	if generated {
		if password, err = security.GenerateTempPassword(tempPasswordLen); err != nil {
			logg.Error(ctx, "failed to generate password", err)
			os.Exit(1)
		}
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	svc, err := users.NewService(users.NewRepository(dbClient.DB()), cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to create users service", err)
		os.Exit(1)
	}

	user, err := svc.Create(ctx, users.CreateUserInput{
		Nome:     *nome,
		Email:    *email,
		Password: password,
		Papel:    *papel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create user failed: %v\n", err)
		if typed := pkgerrors.As(err); typed != nil {
			for _, detail := range typed.Details() {
				fmt.Fprintln(os.Stderr, " -", detail)
			}
		}
		os.Exit(1)
	}

	fmt.Printf("created user %d <%s> role=%s\n", user.ID, user.Email, user.Papel)
	if generated {
		fmt.Println("temporary password:", password)
	}
}
