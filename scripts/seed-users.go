package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rosterhq/roster/internal/auth"
	"github.com/rosterhq/roster/internal/model"
	"github.com/rosterhq/roster/internal/repository"
)

type output struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		count       = flag.Int("count", 5, "Number of demo users to create")
		domain      = flag.String("domain", "example.com", "Email domain for generated users")
		password    = flag.String("password", "changeme-demo", "Password shared by the generated users")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *count < 1 {
		fmt.Fprintln(os.Stderr, "count must be at least 1")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	created := make([]output, 0, *count)
	for i := 0; i < *count; i++ {
		now := time.Now().UTC()
		user := &model.User{
			ID:             ulid.Make().String(),
			Email:          fmt.Sprintf("demo-%d-%d@%s", now.UnixNano(), i, *domain),
			Name:           fmt.Sprintf("Demo User %d", i+1),
			HashedPassword: hash,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := repo.CreateUser(ctx, user); err != nil {
			fmt.Fprintf(os.Stderr, "create user %s: %v\n", user.Email, err)
			os.Exit(1)
		}

		created = append(created, output{ID: user.ID, Email: user.Email, Name: user.Name})
	}

	switch *format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(created); err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(1)
		}
	default:
		for _, user := range created {
			fmt.Printf("%s  %s  %s\n", user.ID, user.Email, user.Name)
		}
		fmt.Printf("\nSeeded %d users (password %q)\n", len(created), *password)
	}
}
