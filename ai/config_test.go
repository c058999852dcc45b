package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.NotEmpty(t, cfg.ConvertModel)
	assert.NoError(t, cfg.Validate())
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("https://api.example.com/v1"),
		WithAPIKey("secret"),
		WithConvertModel("convert-model"),
		WithDensifyModel("densify-model"),
	)

	assert.Equal(t, "https://api.example.com/v1", cfg.Host)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "convert-model", cfg.ConvertModel)
	assert.Equal(t, "densify-model", cfg.DensifyModel)
}

func TestConfigNormalize(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)

	cfg = NewConfig(WithHost("http://localhost:11434/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)

	// Already canonical hosts are left alone.
	cfg = NewConfig(WithHost("http://localhost:11434/v1"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig()
	cfg.Host = ""
	require.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.ConvertModel = ""
	require.Error(t, cfg.Validate())

	// DensifyModel is optional: empty disables densification.
	cfg = NewConfig(WithDensifyModel(""))
	assert.NoError(t, cfg.Validate())
}
