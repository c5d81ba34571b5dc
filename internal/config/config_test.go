package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "jwt_secret")
		t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
		t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "jwt_secret", cfg.JWTSecret)
		assert.Equal(t, "rzp_test_key", cfg.RazorpayKeyID)
		assert.Equal(t, "rzp_test_secret", cfg.RazorpayKeySecret)
	})

	t.Run("Missing payment secret still loads", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("RAZORPAY_KEY_SECRET", "")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Empty(t, cfg.RazorpayKeySecret)
	})
}
