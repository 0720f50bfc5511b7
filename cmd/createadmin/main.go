// Command createadmin seeds the first super-admin account. It is the only
// path that creates a user without an already-authenticated super-admin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"syscall"
	"unicode"

	"golang.org/x/term"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/infrastructure/config"
	mongodb "github.com/bookbuddy/library-api/internal/infrastructure/db/mongo"
	"github.com/bookbuddy/library-api/internal/pkg/password"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	fmt.Println("=== Create Super Admin User ===")

	reader := bufio.NewReader(os.Stdin)
	username, err := prompt(reader, "Username: ")
	if err != nil {
		return err
	}
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}

	email, err := prompt(reader, "Email: ")
	if err != nil {
		return err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("please provide a valid email")
	}

	fmt.Print("Password (min 8 chars, 1 uppercase, 1 lowercase, 1 number): ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}
	pass := string(raw)
	if !strongPassword(pass) {
		return fmt.Errorf("password must be at least 8 characters with 1 uppercase, 1 lowercase, and 1 number")
	}

	hasher := password.NewBcrypt()
	hash, err := hasher.Hash(pass)
	if err != nil {
		return err
	}

	repo := mongodb.NewUserRepository(db)
	user, err := repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Super admin %q created (id %s)\n", user.Username, user.ID)
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func strongPassword(pass string) bool {
	if len(pass) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range pass {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
