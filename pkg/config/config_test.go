package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnvViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newEnvViper())
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.GeminiModel)
	assert.Equal(t, 1024, cfg.AI.MaxTokens)
	assert.Equal(t, 128, cfg.AI.TagMaxTokens)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, 20*time.Second, cfg.AI.Timeout())
	assert.Equal(t, 20, cfg.Recommend.MaxCandidates)
	assert.Equal(t, 20, cfg.Recommend.PromptCatalogLimit)
	assert.Equal(t, "file", cfg.Catalog.Source)
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_EnvTienePrioridad(t *testing.T) {
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("AI_TEMPERATURE", "0.2")
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("RECOMMEND_MAX_CANDIDATES", "8")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := fromViper(newEnvViper())
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "http://localhost:11434/v1", cfg.AI.OpenAIBaseURL)
	assert.InDelta(t, 0.2, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout())
	assert.Equal(t, 8, cfg.Recommend.MaxCandidates)
	assert.True(t, cfg.JWT.Enabled())
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_ValoresInvalidos(t *testing.T) {
	t.Run("proveedor desconocido", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "mistral")
		_, err := fromViper(newEnvViper())
		assert.ErrorContains(t, err, "AI_PROVIDER")
	})
	t.Run("fuente de catalogo desconocida", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "s3")
		_, err := fromViper(newEnvViper())
		assert.ErrorContains(t, err, "CATALOG_SOURCE")
	})
	t.Run("entero ilegible usa el default", func(t *testing.T) {
		t.Setenv("RECOMMEND_PROMPT_LIMIT", "muchos")
		cfg, err := fromViper(newEnvViper())
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.Recommend.PromptCatalogLimit)
	})
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "recs", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/recs?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
