package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v6"
)

// DefaultWebAppURL - адрес веб-приложения для просмотра тензорных выражений,
// используется как база для shareable-ссылок по умолчанию.
const DefaultWebAppURL = "https://seriousseal.github.io/tensor_expressions_webapp/"

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress   string `env:"SERVER_ADDRESS"`    // Адрес для запуска HTTP-сервера
	BaseURL         string `env:"BASE_URL"`          // Базовый адрес для коротких ссылок
	WebAppURL       string `env:"WEBAPP_URL"`        // Базовый адрес веб-приложения для shareable-ссылок
	FileStoragePath string `env:"FILE_STORAGE_PATH"` // Путь к файлу для хранения ссылок
	DatabaseDSN     string `env:"DATABASE_DSN"`      // Строка подключения к PostgreSQL
	SecretKey       string `env:"SECRET_KEY"`        // Ключ для подписи JWT токенов
	EnableHTTPS     string `env:"ENABLE_HTTPS"`      // Непустое значение включает HTTPS
	TLSCertFile     string `env:"TLS_CERT_FILE"`     // Путь к TLS сертификату
	TLSKeyFile      string `env:"TLS_KEY_FILE"`      // Путь к TLS ключу
	ConfigFile      string `env:"CONFIG"`            // Путь к JSON файлу конфигурации

	// Параметры асинхронного удаления ссылок
	BatchDeleteMaxWorkers          int `env:"BATCH_DELETE_MAX_WORKERS"`
	BatchDeleteBatchSize           int `env:"BATCH_DELETE_BATCH_SIZE"`
	BatchDeleteSequentialThreshold int `env:"BATCH_DELETE_SEQUENTIAL_THRESHOLD"`
}

// JSONConfig описывает структуру JSON файла конфигурации. Поля-указатели
// позволяют отличить отсутствующее значение от нулевого.
type JSONConfig struct {
	ServerAddress                  *string `json:"server_address,omitempty"`
	BaseURL                        *string `json:"base_url,omitempty"`
	WebAppURL                      *string `json:"webapp_url,omitempty"`
	FileStoragePath                *string `json:"file_storage_path,omitempty"`
	DatabaseDSN                    *string `json:"database_dsn,omitempty"`
	SecretKey                      *string `json:"secret_key,omitempty"`
	EnableHTTPS                    *bool   `json:"enable_https,omitempty"`
	TLSCertFile                    *string `json:"tls_cert_file,omitempty"`
	TLSKeyFile                     *string `json:"tls_key_file,omitempty"`
	BatchDeleteMaxWorkers          *int    `json:"batch_delete_max_workers,omitempty"`
	BatchDeleteBatchSize           *int    `json:"batch_delete_batch_size,omitempty"`
	BatchDeleteSequentialThreshold *int    `json:"batch_delete_sequential_threshold,omitempty"`
}

// IsHTTPSEnabled сообщает, включен ли HTTPS
func (c *Config) IsHTTPSEnabled() bool {
	return c.EnableHTTPS != ""
}

// loadJSONConfig читает JSON файл конфигурации. Пустое имя файла и
// отсутствующий файл не считаются ошибкой.
func loadJSONConfig(filename string) (*JSONConfig, error) {
	if filename == "" {
		return &JSONConfig{}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return &JSONConfig{}, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	jsonConfig := &JSONConfig{}
	if err := json.Unmarshal(data, jsonConfig); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return jsonConfig, nil
}

// applyJSONConfig применяет значения из JSON файла поверх текущих
func (c *Config) applyJSONConfig(jsonConfig *JSONConfig) {
	if jsonConfig.ServerAddress != nil {
		c.ServerAddress = *jsonConfig.ServerAddress
	}
	if jsonConfig.BaseURL != nil {
		c.BaseURL = *jsonConfig.BaseURL
	}
	if jsonConfig.WebAppURL != nil {
		c.WebAppURL = *jsonConfig.WebAppURL
	}
	if jsonConfig.FileStoragePath != nil {
		c.FileStoragePath = *jsonConfig.FileStoragePath
	}
	if jsonConfig.DatabaseDSN != nil {
		c.DatabaseDSN = *jsonConfig.DatabaseDSN
	}
	if jsonConfig.SecretKey != nil {
		c.SecretKey = *jsonConfig.SecretKey
	}
	if jsonConfig.EnableHTTPS != nil {
		if *jsonConfig.EnableHTTPS {
			c.EnableHTTPS = "true"
		} else {
			c.EnableHTTPS = ""
		}
	}
	if jsonConfig.TLSCertFile != nil {
		c.TLSCertFile = *jsonConfig.TLSCertFile
	}
	if jsonConfig.TLSKeyFile != nil {
		c.TLSKeyFile = *jsonConfig.TLSKeyFile
	}
	if jsonConfig.BatchDeleteMaxWorkers != nil {
		c.BatchDeleteMaxWorkers = *jsonConfig.BatchDeleteMaxWorkers
	}
	if jsonConfig.BatchDeleteBatchSize != nil {
		c.BatchDeleteBatchSize = *jsonConfig.BatchDeleteBatchSize
	}
	if jsonConfig.BatchDeleteSequentialThreshold != nil {
		c.BatchDeleteSequentialThreshold = *jsonConfig.BatchDeleteSequentialThreshold
	}
}

// NewConfig инициализирует конфигурацию. Приоритет источников, от низшего
// к высшему: значения по умолчанию, флаги командной строки, JSON файл,
// переменные окружения.
func NewConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:                  ":8080",
		BaseURL:                        "http://localhost:8080",
		WebAppURL:                      DefaultWebAppURL,
		FileStoragePath:                "shares.json",
		DatabaseDSN:                    "",
		SecretKey:                      "your-secret-key",
		TLSCertFile:                    "server.crt",
		TLSKeyFile:                     "server.key",
		BatchDeleteMaxWorkers:          3,
		BatchDeleteBatchSize:           5,
		BatchDeleteSequentialThreshold: 5,
	}

	// 1. Определение флагов командной строки
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	flag.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "Базовый адрес короткой ссылки (env: BASE_URL)")
	flag.StringVar(&cfg.WebAppURL, "w", cfg.WebAppURL, "Базовый адрес веб-приложения для shareable-ссылок (env: WEBAPP_URL)")
	flag.StringVar(&cfg.FileStoragePath, "f", cfg.FileStoragePath, "Путь к файлу для хранения ссылок (env: FILE_STORAGE_PATH)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "Строка подключения к PostgreSQL (env: DATABASE_DSN)")
	flag.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "Ключ для подписи JWT токенов (env: SECRET_KEY)")
	flag.StringVar(&cfg.ConfigFile, "c", cfg.ConfigFile, "Путь к JSON файлу конфигурации (env: CONFIG)")
	flag.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Путь к JSON файлу конфигурации (env: CONFIG)")
	flag.IntVar(&cfg.BatchDeleteMaxWorkers, "batch-max-workers", cfg.BatchDeleteMaxWorkers, "Максимальное число воркеров пакетного удаления (env: BATCH_DELETE_MAX_WORKERS)")
	flag.IntVar(&cfg.BatchDeleteBatchSize, "batch-size", cfg.BatchDeleteBatchSize, "Размер пакета при удалении (env: BATCH_DELETE_BATCH_SIZE)")
	flag.IntVar(&cfg.BatchDeleteSequentialThreshold, "batch-sequential-threshold", cfg.BatchDeleteSequentialThreshold, "Порог последовательного удаления (env: BATCH_DELETE_SEQUENTIAL_THRESHOLD)")

	var enableHTTPS bool
	flag.BoolVar(&enableHTTPS, "enable-https", false, "Включить HTTPS (env: ENABLE_HTTPS)")

	// 2. Парсинг флагов командной строки
	flag.Parse()

	if enableHTTPS {
		cfg.EnableHTTPS = strconv.FormatBool(enableHTTPS)
	}

	// 3. Применение JSON файла конфигурации: путь берется из флага -c/-config
	// или переменной окружения CONFIG
	configFile := cfg.ConfigFile
	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		configFile = envConfig
	}
	jsonConfig, err := loadJSONConfig(configFile)
	if err != nil {
		return nil, err
	}
	cfg.applyJSONConfig(jsonConfig)

	// 4. Парсинг переменных окружения (имеют наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
