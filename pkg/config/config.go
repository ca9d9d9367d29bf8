package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	}
	Database struct {
		URL      string `env:"DATABASE_URL" env-required:"true" env-description:"Postgres connection string"`
		MaxConns int32  `env:"DATABASE_MAX_CONNS" env-default:"8"`
	}
	Instagram struct {
		User           string        `env:"INSTAGRAM_USER"`
		Pass           string        `env:"INSTAGRAM_PASS"`
		SessionPath    string        `env:"INSTAGRAM_SESSION_PATH" env-default:"./goinsta-session"`
		RequestTimeout time.Duration `env:"INSTAGRAM_REQUEST_TIMEOUT" env-default:"30s"`
	}
	Telegram struct {
		Token  string `env:"TELEGRAM_TOKEN"`
		ChatID int64  `env:"TELEGRAM_CHAT_ID"`
	}
	Storage struct {
		DownloadDir string `env:"DOWNLOAD_DIR" env-default:"./downloads"`
	}
	Sync struct {
		Concurrency       int           `env:"SYNC_CONCURRENCY" env-default:"3"`
		TargetConcurrency int           `env:"SYNC_TARGET_CONCURRENCY" env-default:"2"`
		MaxAttempts       int           `env:"SYNC_MAX_ATTEMPTS" env-default:"3"`
		BackoffInitial    time.Duration `env:"SYNC_BACKOFF_INITIAL" env-default:"2s"`
		BackoffMax        time.Duration `env:"SYNC_BACKOFF_MAX" env-default:"30s"`
		RequestsPerMinute int           `env:"SYNC_REQUESTS_PER_MINUTE" env-default:"20"`
		Burst             int           `env:"SYNC_BURST" env-default:"3"`
		ItemTimeout       time.Duration `env:"SYNC_ITEM_TIMEOUT" env-default:"2m"`
		MaxItemsPerRun    int           `env:"SYNC_MAX_ITEMS_PER_RUN" env-default:"0"`
		Stories           bool          `env:"SYNC_STORIES" env-default:"true"`
		Highlights        bool          `env:"SYNC_HIGHLIGHTS" env-default:"false"`
		CommitTimeout     time.Duration `env:"SYNC_COMMIT_TIMEOUT" env-default:"30s"`
	}
	Schedule struct {
		MinInterval time.Duration `env:"SCHEDULE_MIN_INTERVAL" env-default:"6h"`
		MaxInterval time.Duration `env:"SCHEDULE_MAX_INTERVAL" env-default:"8h"`
		Timezone    string        `env:"SCHEDULE_TIMEZONE" env-default:"UTC"`
		CleanDays   int           `env:"SCHEDULE_CLEAN_DAYS" env-default:"0"`
	}
}

// New loads an optional .env file and then reads the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) GetDSN() string {
	return c.Database.URL
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) Validate() error {
	var errs []error

	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Sync.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("SYNC_CONCURRENCY must be at least 1, got %d", c.Sync.Concurrency))
	}
	if c.Sync.TargetConcurrency < 1 {
		errs = append(errs, fmt.Errorf("SYNC_TARGET_CONCURRENCY must be at least 1, got %d", c.Sync.TargetConcurrency))
	}
	if c.Sync.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("SYNC_MAX_ATTEMPTS must be at least 1, got %d", c.Sync.MaxAttempts))
	}
	if c.Sync.RequestsPerMinute < 1 {
		errs = append(errs, fmt.Errorf("SYNC_REQUESTS_PER_MINUTE must be at least 1, got %d", c.Sync.RequestsPerMinute))
	}
	if c.Sync.Burst < 1 {
		errs = append(errs, fmt.Errorf("SYNC_BURST must be at least 1, got %d", c.Sync.Burst))
	}
	if c.Sync.MaxItemsPerRun < 0 {
		errs = append(errs, fmt.Errorf("SYNC_MAX_ITEMS_PER_RUN must not be negative, got %d", c.Sync.MaxItemsPerRun))
	}
	if c.Schedule.MinInterval > c.Schedule.MaxInterval {
		errs = append(errs, fmt.Errorf("SCHEDULE_MIN_INTERVAL (%s) is greater than SCHEDULE_MAX_INTERVAL (%s)",
			c.Schedule.MinInterval, c.Schedule.MaxInterval))
	}
	if c.Schedule.CleanDays < 0 {
		errs = append(errs, fmt.Errorf("SCHEDULE_CLEAN_DAYS must not be negative, got %d", c.Schedule.CleanDays))
	}

	return errors.Join(errs...)
}
