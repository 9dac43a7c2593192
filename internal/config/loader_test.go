package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/livescores/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.CloseToGameThreshold(), convey.ShouldEqual, time.Hour)
			convey.So(cfg.StaleThreshold(), convey.ShouldEqual, 6*time.Hour)
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StaleThresholdMinutes, convey.ShouldEqual, 360)
				convey.So(cfg.MaxConcurrentFetches, convey.ShouldEqual, 16)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LIVESCORES_ADDR", ":8080")
			_ = os.Setenv("LIVESCORES_STORE", "REDIS")
			_ = os.Setenv("LIVESCORES_REDIS_ADDR", "redis:6379")
			_ = os.Setenv("LIVESCORES_STALE_THRESHOLD_MINUTES", "120")
			_ = os.Setenv("LIVESCORES_FETCH_TIMEOUT_MS", "2500")
			_ = os.Setenv("LIVESCORES_SPORTRADAR_API_KEY", "sr-key")
			_ = os.Setenv("LIVESCORES_ENVIRONMENT", "staging")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreRedis)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "redis:6379")
				convey.So(cfg.StaleThreshold(), convey.ShouldEqual, 2*time.Hour)
				convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 2500*time.Millisecond)
				convey.So(cfg.SportradarAPIKey, convey.ShouldEqual, "sr-key")
				convey.So(cfg.Environment, convey.ShouldEqual, "staging")
				convey.So(cfg.CloseToGameThresholdMinutes, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
log_format: json
close_to_game_threshold_minutes: 30
refresh_interval_seconds: 15
max_concurrent_fetches: 4
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("LIVESCORES_CONFIG", tmpFile)
			_ = os.Setenv("LIVESCORES_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")     // env
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json") // file
				convey.So(cfg.CloseToGameThreshold(), convey.ShouldEqual, 30*time.Minute)
				convey.So(cfg.RefreshInterval(), convey.ShouldEqual, 15*time.Second)
				convey.So(cfg.MaxConcurrentFetches, convey.ShouldEqual, 4)
				convey.So(cfg.StaleThresholdMinutes, convey.ShouldEqual, 360) // default
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("LIVESCORES_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail with a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When values are invalid", func() {
			defer clearConfigEnvVars()
			cases := map[string]string{
				"LIVESCORES_ADDR":                     "",
				"LIVESCORES_STORE":                    "postgres",
				"LIVESCORES_STALE_THRESHOLD_MINUTES":  "0",
				"LIVESCORES_REFRESH_INTERVAL_SECONDS": "-5",
				"LIVESCORES_MAX_CONCURRENT_FETCHES":   "0",
			}
			for key, value := range cases {
				clearConfigEnvVars()
				_ = os.Setenv(key, value)
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := config.Load(cancelled)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})

		convey.Convey("When a numeric value cannot be parsed", func() {
			_ = os.Setenv("LIVESCORES_FETCH_TIMEOUT_MS", "soon")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}

func clearConfigEnvVars() {
	for _, envVar := range []string{
		"LIVESCORES_CONFIG",
		"LIVESCORES_ADDR",
		"LIVESCORES_STORE",
		"LIVESCORES_REDIS_ADDR",
		"LIVESCORES_LOG_FORMAT",
		"LIVESCORES_STALE_THRESHOLD_MINUTES",
		"LIVESCORES_CLOSE_TO_GAME_THRESHOLD_MINUTES",
		"LIVESCORES_REFRESH_INTERVAL_SECONDS",
		"LIVESCORES_FETCH_TIMEOUT_MS",
		"LIVESCORES_MAX_CONCURRENT_FETCHES",
		"LIVESCORES_SPORTRADAR_API_KEY",
		"LIVESCORES_ENVIRONMENT",
	} {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "livescores-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
