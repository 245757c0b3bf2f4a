// Command seed fills the configured database with demo data.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"warbler/backend/internal/config"
	"warbler/backend/internal/database"
	"warbler/backend/internal/middleware"
	"warbler/backend/internal/seed"
	"warbler/backend/internal/store"
)

func main() {
	users := flag.Int("users", 20, "Number of users to create")
	messages := flag.Int("messages", 100, "Number of public messages to create")
	dms := flag.Int("dms", 60, "Number of direct messages to create")
	private := flag.Float64("private", 0.25, "Share of users with a private profile")
	admin := flag.String("admin", "admin", "Username of the admin account to create (empty to skip)")
	adminPassword := flag.String("admin-password", seed.DefaultPassword, "Password for the admin account")
	randSeed := flag.Int64("seed", 0, "Random seed (0 for random)")
	flag.Parse()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(middleware.NewLogger(cfg.IsProduction()))

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	_, err = seed.NewSeeder(store.New(db), *randSeed).Run(context.Background(), seed.Options{
		Users:          *users,
		Messages:       *messages,
		DirectMessages: *dms,
		PrivateRatio:   *private,
		AdminUsername:  *admin,
		AdminPassword:  *adminPassword,
	})
	if err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
