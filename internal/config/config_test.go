package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		Env:             "development",
		JWTSecret:       "secure-secret-at-least-32-chars-long",
		DBDriver:        "sqlite",
		DBPassword:      "secure-password",
		StorageDriver:   "local",
		UploadDir:       "public",
		UploadMaxSizeMB: 10,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBDriver = "postgres"
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateDrivers(t *testing.T) {
	t.Run("unknown database driver", func(t *testing.T) {
		c := validConfig()
		c.DBDriver = "mysql"
		assert.ErrorContains(t, c.Validate(), "DB_DRIVER")
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		c := validConfig()
		c.StorageDriver = "s3"
		assert.ErrorContains(t, c.Validate(), "STORAGE_DRIVER")
	})

	t.Run("minio requires credentials", func(t *testing.T) {
		c := validConfig()
		c.StorageDriver = "minio"
		c.MinioBucket = "aihub"
		assert.Error(t, c.Validate())

		c.MinioEndpoint = "localhost:9000"
		c.MinioAccessKey = "key"
		c.MinioSecretKey = "secret"
		assert.NoError(t, c.Validate())
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.JWTSecret = defaultJWTSecret
		assert.Error(t, c.Validate())
	})
}

func TestLoadConfig_Normalization(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("DB_DRIVER", " SQLite ")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "local", c.StorageDriver)
	assert.Equal(t, 50, c.UploadMaxSizeMB)
	assert.Equal(t, 30, c.ListCacheTTLSeconds)
}

func TestConfig_ValidateLogLevel(t *testing.T) {
	c := validConfig()
	c.LogLevel = "debug"
	assert.NoError(t, c.Validate())

	c.LogLevel = "trace"
	assert.ErrorContains(t, c.Validate(), "LOG_LEVEL")
}
