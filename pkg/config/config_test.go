package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "TASK_ORDER_POLICY", "JWT_TTL_HOURS", "BCRYPT_COST", "REDIS_URL", "NATS_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Driver != StoreDriverPostgres {
		t.Errorf("Store.Driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.Tasks.OrderPolicy != OrderPolicyCount {
		t.Errorf("OrderPolicy = %q, want count", cfg.Tasks.OrderPolicy)
	}
	if cfg.JWT.TTL != 7*24*time.Hour {
		t.Errorf("JWT.TTL = %v, want 168h", cfg.JWT.TTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.Auth.BcryptCost)
	}
	if cfg.Redis.URL != "" || cfg.NATS.URL != "" {
		t.Error("redis and nats must be disabled by default")
	}
	if cfg.Redis.StatsTTL != 5*time.Minute {
		t.Errorf("StatsTTL = %v, want 5m", cfg.Redis.StatsTTL)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("TASK_ORDER_POLICY", "monotonic")
	t.Setenv("JWT_TTL_HOURS", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("Store.Driver = %q, want memory", cfg.Store.Driver)
	}
	if cfg.Tasks.OrderPolicy != OrderPolicyMonotonic {
		t.Errorf("OrderPolicy = %q", cfg.Tasks.OrderPolicy)
	}
	if cfg.JWT.TTL != time.Hour {
		t.Errorf("JWT.TTL = %v", cfg.JWT.TTL)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"STORE_DRIVER":      "mongo",
		"TASK_ORDER_POLICY": "random",
		"JWT_TTL_HOURS":     "-2",
		"BCRYPT_COST":       "99",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	want := "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
