package main

import (
	"github.com/onurcolak/sms-relay/environments"
	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/database"
	"github.com/onurcolak/sms-relay/pkg/logger"
	"github.com/onurcolak/sms-relay/pkg/sessiontoken"
)

// Seeds the demo accounts and prints a session token for each so the API
// can be tried without going through account creation.
func main() {
	cfg := environments.Load()
	logger.Init(cfg.Log.Level)

	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Errorf("Failed to close database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedTestData(db); err != nil {
		logger.Fatalf("Failed to seed test data: %v", err)
	}

	if cfg.Auth.SessionSecret == "" {
		logger.Infof("Seed completed; set SESSION_SECRET to print demo tokens")
		return
	}

	var accounts []domain.Account
	if err := db.Select(&accounts, "SELECT id, email, external_id, forwarding_number, created_at, updated_at FROM accounts ORDER BY id"); err != nil {
		logger.Fatalf("Failed to list accounts: %v", err)
	}

	issuer := sessiontoken.NewIssuer(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	for _, account := range accounts {
		token, err := issuer.Issue(account.ID)
		if err != nil {
			logger.Fatalf("Failed to issue token for %s: %v", account.Email, err)
		}
		logger.Infof("%s (account %d): %s", account.Email, account.ID, token)
	}

	logger.Infof("Seed completed successfully")
}
