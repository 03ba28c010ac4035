// Command adduser provisions a dashboard account.
// Usage: go run ./cmd/adduser -email admin@example.com -name "Admin"
// The password is read from -password or CLEANREPORTS_ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"cleanreports/internal/config"
	"cleanreports/internal/domain"
	"cleanreports/internal/repository/postgres"
)

const minPasswordLength = 8

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	email := flag.String("email", "", "account email (required)")
	name := flag.String("name", "", "full name")
	password := flag.String("password", "", "account password; defaults to $CLEANREPORTS_ADMIN_PASSWORD")
	inactive := flag.Bool("inactive", false, "create the account disabled")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("CLEANREPORTS_ADMIN_PASSWORD")
	}
	user, err := newUser(*email, *name, *password, !*inactive)
	if err != nil {
		flag.Usage()
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := postgres.NewUserRepo(db).Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return fmt.Errorf("an account for %s already exists", user.Email)
		}
		return fmt.Errorf("creating user: %w", err)
	}

	log.WithField("user_id", user.ID).WithField("email", user.Email).Info("user created")
	return nil
}

func newUser(email, name, password string, active bool) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid -email is required")
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(name),
		IsActive:     active,
	}, nil
}
