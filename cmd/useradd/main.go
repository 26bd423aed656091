// Command useradd creates accounts out of band, including admins, which the
// registration form never produces.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/kevlab/flasktaskr-project/domain"
	"github.com/kevlab/flasktaskr-project/internal/config"
	pgInfra "github.com/kevlab/flasktaskr-project/internal/infrastructure/postgres"
	"github.com/kevlab/flasktaskr-project/pkg/hasher"
	"github.com/kevlab/flasktaskr-project/pkg/logger"
	"github.com/kevlab/flasktaskr-project/repository/postgres"
	userUC "github.com/kevlab/flasktaskr-project/usecase/user"
)

func main() {
	name := flag.String("name", "", "account name")
	email := flag.String("email", "", "account email")
	password := flag.String("password", os.Getenv("USERADD_PASSWORD"), "account password (or USERADD_PASSWORD)")
	role := flag.String("role", string(domain.RoleUser), "role: user or admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	zapLogger, err := logger.New(logger.Config{Level: cfg.Logger.Level, Encoding: "console"})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Context.ShutdownTimeout)
	defer cancel()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}
	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	uc := userUC.New(postgres.NewUserRepository(pool), hasher.NewBcrypt(cfg.Security.BcryptCost), zapLogger)
	user, err := uc.Provision(ctx, userUC.ProvisionInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     domain.Role(*role),
	})
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			fields := make([]string, 0, len(vErr.Fields))
			for f := range vErr.Fields {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				fmt.Fprintf(os.Stderr, "-%s: %s\n", f, vErr.Fields[f])
			}
			os.Exit(2)
		}
		zapLogger.Fatal("create user failed", zap.Error(err))
	}

	fmt.Printf("created %s %q (id %d)\n", user.Role, user.Name, user.ID)
}
