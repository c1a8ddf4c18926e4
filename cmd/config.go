package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SequenceBackendGorm  = "gorm"
	SequenceBackendRedis = "redis"
)

type Config struct {
	AppEnv   string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SequenceBackend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers     []string
	KafkaLedgerTopic string

	RepairSchedule      string
	RepairMinAge        time.Duration
	AgingReportSchedule string
	AgingReportDir      string
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SEQUENCE_BACKEND", SequenceBackendGorm)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_LEDGER_TOPIC", "custody.events")
	v.SetDefault("REPAIR_SCHEDULE", "0 */5 * * * *")
	v.SetDefault("REPAIR_MIN_AGE", "2m")
	v.SetDefault("AGING_REPORT_SCHEDULE", "0 0 2 * * *")
	v.SetDefault("AGING_REPORT_DIR", "reports")

	config := Config{
		AppEnv:              v.GetString("APP_ENV"),
		HTTPPort:            v.GetString("HTTP_PORT"),
		DBHost:              v.GetString("DB_HOST"),
		DBPort:              v.GetString("DB_PORT"),
		DBUser:              v.GetString("DB_USER"),
		DBPassword:          v.GetString("DB_PASSWORD"),
		DBName:              v.GetString("DB_NAME"),
		DBSslMode:           v.GetString("DB_SSLMODE"),
		SequenceBackend:     strings.ToLower(v.GetString("SEQUENCE_BACKEND")),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		KafkaBrokers:        splitList(v.GetString("KAFKA_BROKERS")),
		KafkaLedgerTopic:    v.GetString("KAFKA_LEDGER_TOPIC"),
		RepairSchedule:      v.GetString("REPAIR_SCHEDULE"),
		RepairMinAge:        v.GetDuration("REPAIR_MIN_AGE"),
		AgingReportSchedule: v.GetString("AGING_REPORT_SCHEDULE"),
		AgingReportDir:      v.GetString("AGING_REPORT_DIR"),
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	var errList []error
	if c.DBName == "" {
		errList = append(errList, errors.New("DB_NAME is required"))
	}
	switch c.SequenceBackend {
	case SequenceBackendGorm:
	case SequenceBackendRedis:
		if c.RedisAddr == "" {
			errList = append(errList, errors.New("REDIS_ADDR is required for the redis sequence backend"))
		}
	default:
		errList = append(errList, fmt.Errorf("SEQUENCE_BACKEND must be %q or %q, got %q",
			SequenceBackendGorm, SequenceBackendRedis, c.SequenceBackend))
	}
	if c.RepairMinAge < 0 {
		errList = append(errList, errors.New("REPAIR_MIN_AGE must not be negative"))
	}
	return errors.Join(errList...)
}

// DSN is the Postgres connection string in key=value form.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
