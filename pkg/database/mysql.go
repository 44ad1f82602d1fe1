package database

import (
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/sms-relay/environments"
	"github.com/onurcolak/sms-relay/pkg/logger"
)

// buildDSN reports matched rather than changed rows from UPDATE, so an update
// that leaves a row as it was still counts as finding it.
func buildDSN(cfg environments.DatabaseConfig) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	c.DBName = cfg.DBName
	c.ParseTime = true
	c.ClientFoundRows = true
	c.Collation = "utf8mb4_unicode_ci"
	c.Params = map[string]string{"charset": "utf8mb4"}

	return c.FormatDSN()
}

func NewMySQLDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Connected to MySQL database")
	return db, nil
}

// Share requests are unique per ordered (from, to) pair and validation codes
// per account; the services rely on these keys rather than check-then-insert.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS accounts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		external_id VARCHAR(255) NOT NULL,
		forwarding_number CHAR(11) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_accounts_email (email),
		UNIQUE KEY uq_accounts_external_id (external_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`,
	`
	CREATE TABLE IF NOT EXISTS telephones (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		account_id BIGINT NOT NULL,
		number VARCHAR(20) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_telephones_account (account_id),
		UNIQUE KEY uq_telephones_number (number),
		CONSTRAINT fk_telephones_account FOREIGN KEY (account_id) REFERENCES accounts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`,
	`
	CREATE TABLE IF NOT EXISTS messages (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		telephone_id BIGINT NOT NULL,
		from_number VARCHAR(20) NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		INDEX idx_messages_telephone (telephone_id, id),
		CONSTRAINT fk_messages_telephone FOREIGN KEY (telephone_id) REFERENCES telephones (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`,
	`
	CREATE TABLE IF NOT EXISTS share_requests (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		from_account_id BIGINT NOT NULL,
		to_account_id BIGINT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_share_requests_pair (from_account_id, to_account_id),
		INDEX idx_share_requests_to (to_account_id, completed),
		CONSTRAINT fk_share_requests_from FOREIGN KEY (from_account_id) REFERENCES accounts (id) ON DELETE CASCADE,
		CONSTRAINT fk_share_requests_to FOREIGN KEY (to_account_id) REFERENCES accounts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`,
	`
	CREATE TABLE IF NOT EXISTS validation_codes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		account_id BIGINT NOT NULL,
		code CHAR(6) NOT NULL,
		forwarding_number CHAR(11) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_validation_codes_account (account_id),
		INDEX idx_validation_codes_number (forwarding_number),
		CONSTRAINT fk_validation_codes_account FOREIGN KEY (account_id) REFERENCES accounts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`,
}

func RunMigrations(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration %d: %w", i+1, err)
		}
	}

	logger.Infof("Database migrations completed (%d statements)", len(migrations))

	return nil
}

// SeedTestData inserts two demo accounts that share with each other plus a
// few messages. It does nothing when accounts already exist.
func SeedTestData(db *sqlx.DB) error {
	var count int

	if err := db.Get(&count, "SELECT COUNT(*) FROM accounts"); err != nil {
		return err
	}

	if count > 0 {
		logger.Infof("Database already has %d accounts, skipping seed", count)
		return nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seedAccounts := []struct {
		email  string
		number string
	}{
		{"alice@example.com", "15550000001"},
		{"bob@example.com", "15550000002"},
	}

	telephoneIDs := make([]int64, 0, len(seedAccounts))
	accountIDs := make([]int64, 0, len(seedAccounts))
	for _, a := range seedAccounts {
		res, err := tx.Exec("INSERT INTO accounts (email, external_id) VALUES (?, ?)", a.email, "seed-"+a.email)
		if err != nil {
			return fmt.Errorf("failed to seed account: %w", err)
		}
		accountID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get seeded account id: %w", err)
		}

		res, err = tx.Exec("INSERT INTO telephones (account_id, number) VALUES (?, ?)", accountID, a.number)
		if err != nil {
			return fmt.Errorf("failed to seed telephone: %w", err)
		}
		telephoneID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get seeded telephone id: %w", err)
		}

		accountIDs = append(accountIDs, accountID)
		telephoneIDs = append(telephoneIDs, telephoneID)
	}

	if _, err := tx.Exec(
		"INSERT INTO share_requests (from_account_id, to_account_id, completed) VALUES (?, ?, TRUE)",
		accountIDs[0], accountIDs[1],
	); err != nil {
		return fmt.Errorf("failed to seed share request: %w", err)
	}

	seedMessages := []struct {
		from string
		body string
	}{
		{"15559876543", "Your verification code is 482913"},
		{"15551112233", "Your order has been shipped."},
		{"15554445566", "Reminder: your appointment is tomorrow at 10 AM"},
	}
	for _, m := range seedMessages {
		if _, err := tx.Exec(
			"INSERT INTO messages (telephone_id, from_number, body) VALUES (?, ?, ?)",
			telephoneIDs[0], m.from, m.body,
		); err != nil {
			return fmt.Errorf("failed to seed message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	logger.Infof("Seeded %d accounts and %d messages", len(seedAccounts), len(seedMessages))
	return nil
}
