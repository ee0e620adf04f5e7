package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/furniture/internal/messaging/kafka"
)

// StorageDriver выбирает хранилище снимка активных заказов.
type StorageDriver string

const (
	StorageDriverFile     StorageDriver = "file"
	StorageDriverPostgres StorageDriver = "postgres"
)

const envPrefix = "FURNITURE_"

// Config описывает настройки запуска.
type Config struct {
	CatalogPath         string        `yaml:"catalog_path"`
	OrdersPath          string        `yaml:"orders_path"`
	StorageDriver       StorageDriver `yaml:"storage_driver"`
	PostgresDSN         string        `yaml:"postgres_dsn"`
	PostgresAutoMigrate bool          `yaml:"postgres_auto_migrate"`
	// MetricsAddr — адрес ops HTTP-сервера; пустой отключает сервер.
	MetricsAddr  string   `yaml:"metrics_addr"`
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
	LogLevel     string   `yaml:"log_level"`
}

// DefaultConfig возвращает настройки по умолчанию: файлы в текущем каталоге,
// без метрик и без Kafka.
func DefaultConfig() Config {
	return Config{
		CatalogPath:         "furniture_catalog.txt",
		OrdersPath:          "customer_information.txt",
		StorageDriver:       StorageDriverFile,
		PostgresAutoMigrate: true,
		KafkaTopic:          kafka.TopicOrderEvents,
		LogLevel:            "info",
	}
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverFile:
		if strings.TrimSpace(c.OrdersPath) == "" {
			return errors.New("orders_path is required for file storage")
		}
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return errors.New("postgres_dsn is required for postgres storage")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}
	if strings.TrimSpace(c.CatalogPath) == "" {
		return errors.New("catalog_path is required")
	}
	return nil
}

// LoadConfig собирает конфигурацию: значения по умолчанию, затем YAML-файл
// (если path не пуст), затем переменные окружения FURNITURE_*. Некорректные
// значения окружения не ломают запуск и возвращаются как предупреждения.
func LoadConfig(path string, lookup func(string) (string, bool)) (Config, []string, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	warnings := applyEnv(&cfg, lookup)

	if err := cfg.Validate(); err != nil {
		return Config{}, warnings, err
	}
	return cfg, warnings, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) []string {
	var warnings []string

	get := func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get("CATALOG_PATH"); ok && v != "" {
		cfg.CatalogPath = v
	}
	if v, ok := get("ORDERS_PATH"); ok && v != "" {
		cfg.OrdersPath = v
	}
	if v, ok := get("STORAGE_DRIVER"); ok && v != "" {
		cfg.StorageDriver = StorageDriver(strings.ToLower(v))
	}
	if v, ok := get("POSTGRES_DSN"); ok && v != "" {
		cfg.PostgresDSN = v
	}
	if v, ok := get("POSTGRES_AUTO_MIGRATE"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid %sPOSTGRES_AUTO_MIGRATE=%q, using %t", envPrefix, v, cfg.PostgresAutoMigrate))
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}
	if v, ok := get("METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := get("KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	if v, ok := get("KAFKA_TOPIC"); ok && v != "" {
		cfg.KafkaTopic = v
	}
	if v, ok := get("LOG_LEVEL"); ok && v != "" {
		if _, err := log.ParseLevel(v); err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid %sLOG_LEVEL=%q, using %s", envPrefix, v, cfg.LogLevel))
		} else {
			cfg.LogLevel = v
		}
	}

	return warnings
}

// splitList разбирает список через запятую, отбрасывая пустые элементы.
func splitList(v string) []string {
	var result []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
