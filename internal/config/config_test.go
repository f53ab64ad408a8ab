package config

import (
	"os"
	"testing"
	"time"
)

func TestMustStore(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  string
		wantPanic bool
	}{
		{
			name:     "default",
			value:    "",
			expected: StoreRedis,
		},
		{
			name:     "sqlite",
			value:    "sqlite",
			expected: StoreSQLite,
		},
		{
			name:     "case insensitive",
			value:    "MEMORY",
			expected: StoreMemory,
		},
		{
			name:      "unknown backend",
			value:     "mongo",
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_STORE", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("mustStore() should have panicked")
					}
				}()
			}

			result := mustStore("TEST_STORE", StoreRedis)
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("mustStore() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustLocation(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  string
		wantPanic bool
	}{
		{
			name:     "utc",
			value:    "UTC",
			expected: "UTC",
		},
		{
			name:     "default local",
			value:    "",
			expected: "Local",
		},
		{
			name:      "unknown zone",
			value:     "Mars/Olympus_Mons",
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_TZ", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("mustLocation() should have panicked")
					}
				}()
			}

			result := mustLocation("TEST_TZ", "Local")
			if !tt.wantPanic && result.String() != tt.expected {
				t.Errorf("mustLocation() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{
			name:     "single value",
			value:    "value1",
			expected: []string{"value1"},
		},
		{
			name:     "multiple values with quotes",
			value:    `value1, "value2", 'value3'`,
			expected: []string{"value1", "value2", "value3"},
		},
		{
			name:     "empty",
			value:    "",
			expected: nil,
		},
		{
			name:     "only separators",
			value:    " , ,",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() length = %v, want %v", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()
		if cfg.Store != StoreRedis {
			t.Errorf("Store = %v, want redis", cfg.Store)
		}
		if cfg.RedisAddr != "localhost:6379" {
			t.Errorf("RedisAddr = %v", cfg.RedisAddr)
		}
		if cfg.HistoryRetention != 0 {
			t.Errorf("HistoryRetention = %v, want 0", cfg.HistoryRetention)
		}
		if cfg.AllowedHosts != nil {
			t.Errorf("AllowedHosts = %v, want nil", cfg.AllowedHosts)
		}
		if cfg.RateLimitBurst != 30 || cfg.RateLimitPerMin != 120 {
			t.Errorf("rate limit = %d/%d, want 30/120", cfg.RateLimitBurst, cfg.RateLimitPerMin)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("NITRON_STORE", "sqlite")
		t.Setenv("NITRON_SQLITE_PATH", "/data/nitron.db")
		t.Setenv("NITRON_TIMEZONE", "UTC")
		t.Setenv("NITRON_HISTORY_RETENTION", "720h")
		t.Setenv("NITRON_ALLOWED_HOSTS", "nitron.domain.ext, localhost:8080")

		cfg := Load()
		if cfg.Store != StoreSQLite || cfg.SQLitePath != "/data/nitron.db" {
			t.Errorf("store = %v %v", cfg.Store, cfg.SQLitePath)
		}
		if cfg.Location != time.UTC {
			t.Errorf("Location = %v, want UTC", cfg.Location)
		}
		if cfg.HistoryRetention != 720*time.Hour {
			t.Errorf("HistoryRetention = %v", cfg.HistoryRetention)
		}
		if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "localhost:8080" {
			t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
		}
	})

	t.Run("required password", func(t *testing.T) {
		t.Setenv("NITRON_REDIS_PASSWORD_REQUIRED", "true")
		t.Setenv("NITRON_REDIS_PASSWORD", "")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Load() should have panicked without a password")
			}
		}()
		Load()
	})
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
