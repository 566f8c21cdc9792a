package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seriousseal/tensorshare/internal/config"
)

func TestMain(m *testing.M) {
	// Аргументы тестового бинарника не должны попадать в парсер флагов
	originalArgs := os.Args
	os.Args = []string{"tensorshare"}

	// Переменные окружения процесса не должны влиять на тесты
	originalEnv := make(map[string]string)
	for _, envName := range []string{"EXPRESSION", "INDEX_SIZES", "WEBAPP_URL"} {
		if value, exists := os.LookupEnv(envName); exists {
			originalEnv[envName] = value
			os.Unsetenv(envName)
		}
	}

	code := m.Run()

	os.Args = originalArgs
	for envName, value := range originalEnv {
		os.Setenv(envName, value)
	}

	os.Exit(code)
}

func TestGetConfigDefaults(t *testing.T) {
	cfg, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, defaultExpression, cfg.Expression)
	assert.Equal(t, defaultIndexSizes, cfg.Sizes)
	assert.Equal(t, config.DefaultWebAppURL, cfg.WebAppURL)
}

func TestGetConfigFlags(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	os.Args = []string{"tensorshare", "-e", "ab_i_j = a_i * b_j", "-s", "2, 3", "-u", "https://webapp.test/"}

	cfg, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "ab_i_j = a_i * b_j", cfg.Expression)
	assert.Equal(t, "2, 3", cfg.Sizes)
	assert.Equal(t, "https://webapp.test/", cfg.WebAppURL)
}

func TestGetConfigEnvOverridesFlags(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		os.Unsetenv("EXPRESSION")
		os.Unsetenv("WEBAPP_URL")
	}()

	os.Args = []string{"tensorshare", "-e", "flag_expr", "-u", "https://flag.test/"}
	os.Setenv("EXPRESSION", "env_expr")
	os.Setenv("WEBAPP_URL", "https://env.test/")

	cfg, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "env_expr", cfg.Expression)
	assert.Equal(t, "https://env.test/", cfg.WebAppURL)
	// Не переопределен ни флагом, ни окружением
	assert.Equal(t, defaultIndexSizes, cfg.Sizes)
}

func TestRun(t *testing.T) {
	cfg := &cliConfig{
		Expression: "ab_i_j = a_i * b_j",
		Sizes:      "2, 3",
		WebAppURL:  config.DefaultWebAppURL,
	}

	var buf bytes.Buffer
	require.NoError(t, run(&buf, cfg))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Shareable URL: "+config.DefaultWebAppURL+"?e="))
	assert.Contains(t, out, "&s=")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRunDefaultInputs(t *testing.T) {
	cfg := &cliConfig{
		Expression: defaultExpression,
		Sizes:      defaultIndexSizes,
		WebAppURL:  config.DefaultWebAppURL,
	}

	var buf bytes.Buffer
	require.NoError(t, run(&buf, cfg))
	assert.True(t, strings.HasPrefix(buf.String(), "Shareable URL: "+config.DefaultWebAppURL+"?e="))

	// Конвейер детерминирован: повторный запуск дает идентичную ссылку
	var second bytes.Buffer
	require.NoError(t, run(&second, cfg))
	assert.Equal(t, buf.String(), second.String())
}

func TestDefaultIndexSizesCount(t *testing.T) {
	entries := strings.Split(defaultIndexSizes, ",")
	assert.Len(t, entries, 88)
	for _, entry := range entries {
		assert.Equal(t, "2", strings.TrimSpace(entry))
	}
}

func TestMainFunction(t *testing.T) {
	// Значения по умолчанию корректны, main завершает процесс только при ошибке
	assert.NotPanics(t, func() {
		main()
	})
}
