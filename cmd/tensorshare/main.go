package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v6"

	"github.com/seriousseal/tensorshare/internal/buildinfo"
	"github.com/seriousseal/tensorshare/internal/config"
	"github.com/seriousseal/tensorshare/internal/encoding"
)

// Информация о сборке, задается при сборке через ldflags:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=2024-01-01 -X main.buildCommit=abc123" ./cmd/tensorshare
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// cliConfig содержит входные данные построителя ссылки
type cliConfig struct {
	Expression string `env:"EXPRESSION"`
	Sizes      string `env:"INDEX_SIZES"`
	WebAppURL  string `env:"WEBAPP_URL"`
}

// getConfig собирает входные данные построителя.
// Приоритет источников: значения по умолчанию, флаги командной строки,
// переменные окружения.
func getConfig() (*cliConfig, error) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	cfg := &cliConfig{
		Expression: defaultExpression,
		Sizes:      defaultIndexSizes,
		WebAppURL:  config.DefaultWebAppURL,
	}

	flag.StringVar(&cfg.Expression, "e", cfg.Expression, "Выражение тензорной свертки (env: EXPRESSION)")
	flag.StringVar(&cfg.Sizes, "s", cfg.Sizes, "Размеры индексов через запятую (env: INDEX_SIZES)")
	flag.StringVar(&cfg.WebAppURL, "u", cfg.WebAppURL, "Базовый адрес веб-приложения (env: WEBAPP_URL)")
	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// run строит shareable URL и печатает результат в указанный writer
func run(w io.Writer, cfg *cliConfig) error {
	shareURL, err := encoding.BuildShareableURL(cfg.WebAppURL, cfg.Expression, cfg.Sizes)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Shareable URL: %s\n", shareURL)
	return err
}

// fail печатает сообщение об ошибке в stderr и завершает процесс с кодом 1
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Fprint(os.Stderr)

	cfg, err := getConfig()
	if err != nil {
		fail(err)
	}

	if err := run(os.Stdout, cfg); err != nil {
		fail(err)
	}
}
