package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FIELDSALES_APP_NAME":                     os.Getenv("FIELDSALES_APP_NAME"),
		"FIELDSALES_APP_ENV":                      os.Getenv("FIELDSALES_APP_ENV"),
		"FIELDSALES_APP_PORT":                     os.Getenv("FIELDSALES_APP_PORT"),
		"FIELDSALES_DATABASE_HOST":                os.Getenv("FIELDSALES_DATABASE_HOST"),
		"FIELDSALES_DATABASE_PORT":                os.Getenv("FIELDSALES_DATABASE_PORT"),
		"FIELDSALES_DATABASE_USER":                os.Getenv("FIELDSALES_DATABASE_USER"),
		"FIELDSALES_DATABASE_PASSWORD":            os.Getenv("FIELDSALES_DATABASE_PASSWORD"),
		"FIELDSALES_DATABASE_DBNAME":              os.Getenv("FIELDSALES_DATABASE_DBNAME"),
		"FIELDSALES_DATABASE_SSLMODE":             os.Getenv("FIELDSALES_DATABASE_SSLMODE"),
		"FIELDSALES_DATABASE_MAX_OPEN_CONNS":      os.Getenv("FIELDSALES_DATABASE_MAX_OPEN_CONNS"),
		"FIELDSALES_DATABASE_MAX_IDLE_CONNS":      os.Getenv("FIELDSALES_DATABASE_MAX_IDLE_CONNS"),
		"FIELDSALES_JWT_SECRET":                   os.Getenv("FIELDSALES_JWT_SECRET"),
		"FIELDSALES_SALES_DEFAULT_DISCOUNT_LIMIT": os.Getenv("FIELDSALES_SALES_DEFAULT_DISCOUNT_LIMIT"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "fieldsales-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "fieldsales", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.True(t, cfg.Sales.DefaultDiscountLimit.Equal(decimal.NewFromInt(20)))
	})

	t.Run("loads values from environment variables with FIELDSALES prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FIELDSALES_APP_NAME", "test-app")
		os.Setenv("FIELDSALES_APP_PORT", "9000")
		os.Setenv("FIELDSALES_DATABASE_HOST", "testdb.local")
		os.Setenv("FIELDSALES_DATABASE_PORT", "5433")
		os.Setenv("FIELDSALES_DATABASE_USER", "testuser")
		os.Setenv("FIELDSALES_DATABASE_PASSWORD", "testpass")
		os.Setenv("FIELDSALES_SALES_DEFAULT_DISCOUNT_LIMIT", "35")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.True(t, cfg.Sales.DefaultDiscountLimit.Equal(decimal.NewFromInt(35)))
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("FIELDSALES_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("FIELDSALES_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects discount limit above 100", func(t *testing.T) {
		clearEnv()
		os.Setenv("FIELDSALES_SALES_DEFAULT_DISCOUNT_LIMIT", "150")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_discount_limit")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("FIELDSALES_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "sales",
		Password: "p@ss/word",
		DBName:   "fieldsales",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word")
}
