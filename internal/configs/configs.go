package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"task-sheet-manager.com/task-sheet-manager/internal/constants"
	"task-sheet-manager.com/task-sheet-manager/internal/spreadsheet"
)

const (
	DriverSheets = "sheets"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppURL                 string
	RateLimit              int
	ShutdownTimeoutSeconds int

	StoreDriver string
	DatabaseDSN string

	SpreadsheetID     string
	SheetTitle        string
	CredentialsBase64 string
	CredentialsFile   string
	ValueInput        spreadsheet.ValueInput
	SheetsTimeout     time.Duration

	DeleteMode constants.DeleteMode
	Location   *time.Location

	// RedisAddr is empty when no shared rate limiter is configured.
	RedisAddr string

	LogLevel       string
	LogFormat      string
	LogFile        string
	MetricsEnabled bool
}

// Load reads the configuration from the environment. A .env file, if
// any, must already have been loaded.
func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60)
	collect(err)
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	collect(err)
	sheetsTimeout, err := getEnvAsInt("SHEETS_TIMEOUT_SECONDS", 30)
	collect(err)
	metricsEnabled, err := getEnvAsBool("METRICS_ENABLED", true)
	collect(err)

	valueInput, err := spreadsheet.ParseValueInput(getEnv("SHEETS_VALUE_INPUT", string(spreadsheet.InputRaw)))
	collect(err)

	loc, err := loadLocation(os.Getenv("APP_TIMEZONE"))
	collect(err)

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		RateLimit:              rateLimit,
		ShutdownTimeoutSeconds: shutdownTimeout,
		StoreDriver:            strings.ToLower(getEnv("STORE_DRIVER", DriverSheets)),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		SpreadsheetID:          os.Getenv("SPREADSHEET_ID"),
		SheetTitle:             getEnv("SHEET_TITLE", spreadsheet.DefaultSheetTitle),
		CredentialsBase64:      os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_BASE64"),
		CredentialsFile:        os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ValueInput:             valueInput,
		SheetsTimeout:          time.Duration(sheetsTimeout) * time.Second,
		DeleteMode:             constants.DeleteMode(strings.ToLower(getEnv("TASK_DELETE_MODE", string(constants.DeleteRemove)))),
		Location:               loc,
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
		LogFile:                os.Getenv("LOG_FILE"),
		MetricsEnabled:         metricsEnabled,
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%s", host, getEnv("REDIS_PORT", "6379"))
	}

	collect(validate(cfg))
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	var errs []error
	if cfg.RateLimit <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if cfg.SheetsTimeout <= 0 {
		errs = append(errs, errors.New("SHEETS_TIMEOUT_SECONDS must be greater than 0"))
	}
	switch cfg.DeleteMode {
	case constants.DeleteRemove, constants.DeleteClear:
	default:
		errs = append(errs, fmt.Errorf("TASK_DELETE_MODE must be %q or %q", constants.DeleteRemove, constants.DeleteClear))
	}

	switch cfg.StoreDriver {
	case DriverSheets:
		if cfg.SpreadsheetID == "" {
			errs = append(errs, errors.New("SPREADSHEET_ID must not be empty"))
		}
		if cfg.CredentialsBase64 == "" && cfg.CredentialsFile == "" {
			errs = append(errs, errors.New("GOOGLE_APPLICATION_CREDENTIALS_BASE64 or GOOGLE_APPLICATION_CREDENTIALS must be set"))
		}
	case DriverSQLite:
		if cfg.DatabaseDSN == "" {
			errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q", DriverSheets, DriverSQLite))
	}
	return errors.Join(errs...)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s", key)
		}
		return b, nil
	}
	return defaultVal, nil
}
