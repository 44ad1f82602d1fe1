package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/onurcolak/sms-relay/environments"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(environments.DatabaseConfig{
		Host:     "db.internal",
		Port:     "3307",
		User:     "relay",
		Password: "p@ss:word",
		DBName:   "sms_relay",
	})

	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("failed to parse dsn %q: %v", dsn, err)
	}

	if !parsed.ClientFoundRows {
		t.Error("expected clientFoundRows so unchanged updates still count as matched")
	}
	if !parsed.ParseTime {
		t.Error("expected parseTime")
	}
	if parsed.Addr != "db.internal:3307" {
		t.Errorf("expected addr db.internal:3307, got %s", parsed.Addr)
	}
	if parsed.User != "relay" || parsed.Passwd != "p@ss:word" {
		t.Errorf("unexpected credentials %s/%s", parsed.User, parsed.Passwd)
	}
	if parsed.DBName != "sms_relay" {
		t.Errorf("expected db sms_relay, got %s", parsed.DBName)
	}
}
