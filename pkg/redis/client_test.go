package redis

import (
	"testing"

	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
)

func configEmpty() config.RedisConfig {
	return config.RedisConfig{}
}

func TestKeyBuilders(t *testing.T) {
	t.Parallel()

	c := &Client{}

	if got := c.CartKey("user-1"); got != "sb:cart:user-1" {
		t.Fatalf("unexpected cart key: %s", got)
	}
	if got := c.OTPKey("9876543210"); got != "sb:otp:9876543210" {
		t.Fatalf("unexpected otp key: %s", got)
	}
	if got := c.AccessSessionKey("abc"); got != "sb:session:access:abc" {
		t.Fatalf("unexpected session key: %s", got)
	}
	if got := c.RateLimitKey("otp:ip:1.2.3.4"); got != "sb:rate_limit:otp:ip:1.2.3.4" {
		t.Fatalf("unexpected rate limit key: %s", got)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(configEmpty()); err == nil {
		t.Fatal("expected error for missing url and address")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	t.Parallel()

	cfg := configEmpty()
	cfg.URL = "redis://:pw@localhost:6380/2"

	opts, err := optionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr: %s", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db: %d", opts.DB)
	}
}
