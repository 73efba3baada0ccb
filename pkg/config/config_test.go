package config

import (
	"os"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SWIFTBASKET_APP_ENV", "dev")
	t.Setenv("SWIFTBASKET_APP_PORT", "8080")
	t.Setenv("SWIFTBASKET_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SWIFTBASKET_JWT_SECRET", "secret")
	t.Setenv("SWIFTBASKET_JWT_ISSUER", "swiftbasket")
	os.Unsetenv("SWIFTBASKET_DB_DSN")
	os.Unsetenv("SWIFTBASKET_DB_HOST")
	os.Unsetenv("SWIFTBASKET_DB_USER")
	os.Unsetenv("SWIFTBASKET_DB_NAME")
	os.Unsetenv("SWIFTBASKET_USE_SQLITE")
}

func TestLoadBuildsDSNFromParts(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SWIFTBASKET_DB_HOST", "db.local")
	t.Setenv("SWIFTBASKET_DB_USER", "basket")
	t.Setenv("SWIFTBASKET_DB_PASSWORD", "pw")
	t.Setenv("SWIFTBASKET_DB_NAME", "swiftbasket")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "postgres://basket:pw@db.local:5432/swiftbasket?sslmode=disable"
	if cfg.DB.DSN != want {
		t.Fatalf("dsn mismatch:\n got %s\nwant %s", cfg.DB.DSN, want)
	}
}

func TestLoadRejectsMissingDBConfig(t *testing.T) {
	setBaseEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when neither DSN nor host/user/name provided")
	}
}

func TestLoadSQLiteSkipsDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SWIFTBASKET_USE_SQLITE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		t.Fatal("expected sqlite flag set")
	}
	if cfg.DB.SQLitePath == "" {
		t.Fatal("expected sqlite path default")
	}
}

func TestCheckoutDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SWIFTBASKET_USE_SQLITE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Checkout.DeliveryFeePaise != 2500 {
		t.Fatalf("unexpected delivery fee: %d", cfg.Checkout.DeliveryFeePaise)
	}
	if cfg.Checkout.SmallCartThresholdPaise != 10000 {
		t.Fatalf("unexpected small cart threshold: %d", cfg.Checkout.SmallCartThresholdPaise)
	}
	if cfg.Orders.DeliveryWindow.Minutes() != 8 {
		t.Fatalf("unexpected delivery window: %s", cfg.Orders.DeliveryWindow)
	}
}
