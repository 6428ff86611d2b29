package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	apperrors "github.com/orgball2608/reel-publisher-bot/pkg/errors"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Name      string `env:"APP_NAME" env-default:"reel-publisher"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		Timezone  string `env:"APP_TIMEZONE" env-default:"Asia/Kolkata"`
	}
	Publish struct {
		Policy              string   `env:"PUBLISH_POLICY" env-default:"SEQUENTIAL_DUAL"`
		Platforms           []string `env:"PUBLISH_PLATFORMS" env-separator:"," env-default:"instagram,facebook"`
		MaxAttempts         int      `env:"PUBLISH_MAX_ATTEMPTS" env-default:"3"`
		MaxFilesToCheck     int      `env:"PUBLISH_MAX_FILES_TO_CHECK" env-default:"10"`
		DailyCap            int      `env:"PUBLISH_DAILY_CAP" env-default:"0"`
		DailyLogPath        string   `env:"PUBLISH_DAILY_LOG_PATH" env-default:"post_count.json"`
		SecondaryVideosOnly bool     `env:"PUBLISH_SECONDARY_VIDEOS_ONLY" env-default:"false"`
		CheckToken          bool     `env:"PUBLISH_CHECK_TOKEN" env-default:"false"`
	}
	Schedule struct {
		File           string `env:"SCHEDULE_FILE" env-default:"scheduler/config.json"`
		AccountKey     string `env:"SCHEDULE_ACCOUNT_KEY" env-default:"eclipsed_by_you"`
		DefaultCaption string `env:"SCHEDULE_DEFAULT_CAPTION" env-default:"✨"`
	}
	Source struct {
		Backend string        `env:"SOURCE_BACKEND" env-default:"dropbox"`
		Folder  string        `env:"SOURCE_FOLDER"`
		LinkTTL time.Duration `env:"SOURCE_LINK_TTL" env-default:"4h"`
	}
	Dropbox struct {
		AppKey       string `env:"DROPBOX_APP_KEY"`
		AppSecret    string `env:"DROPBOX_APP_SECRET"`
		RefreshToken string `env:"DROPBOX_REFRESH_TOKEN"`
		TokenURL     string `env:"DROPBOX_TOKEN_URL" env-default:"https://api.dropbox.com/oauth2/token"`
	}
	S3 struct {
		Bucket    string `env:"S3_BUCKET"`
		Region    string `env:"S3_REGION" env-default:"auto"`
		Endpoint  string `env:"S3_ENDPOINT"`
		AccessKey string `env:"S3_ACCESS_KEY"`
		SecretKey string `env:"S3_SECRET_KEY"`
	}
	GCS struct {
		Bucket          string `env:"GCS_BUCKET"`
		CredentialsFile string `env:"GCS_CREDENTIALS_FILE"`
		SignerEmail     string `env:"GCS_SIGNER_EMAIL"`
		Endpoint        string `env:"GCS_ENDPOINT"`
	}
	Meta struct {
		Token            string `env:"META_TOKEN"`
		AppToken         string `env:"META_APP_TOKEN"`
		InstagramID      string `env:"IG_ID"`
		FacebookPageID   string `env:"FB_PAGE_ID"`
		GraphURL         string `env:"META_GRAPH_URL" env-default:"https://graph.facebook.com"`
		APIVersion       string `env:"META_API_VERSION" env-default:"v18.0"`
		RuploadURL       string `env:"META_RUPLOAD_URL" env-default:"https://rupload.facebook.com"`
		ResolvePageToken bool   `env:"META_RESOLVE_PAGE_TOKEN" env-default:"true"`
		RequestsPerMin   int    `env:"META_REQUESTS_PER_MIN" env-default:"60"`
	}
	Instagram PollConfig `env-prefix:"INSTAGRAM_"`
	Facebook  PollConfig `env-prefix:"FACEBOOK_"`
	Telegram  struct {
		Token       string `env:"TELEGRAM_BOT_TOKEN"`
		ChatID      int64  `env:"TELEGRAM_CHAT_ID"`
		APIEndpoint string `env:"TELEGRAM_API_ENDPOINT" env-default:"https://api.telegram.org/bot%s/%s"`
	}
	Postgres struct {
		Enabled bool   `env:"POSTGRES_ENABLED" env-default:"false"`
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
}

// PollConfig bounds the status and verification loops of one platform.
// Zero values are replaced by the platform defaults.
type PollConfig struct {
	StatusRetries  int           `env:"STATUS_RETRIES"`
	StatusInterval time.Duration `env:"STATUS_INTERVAL"`
	VerifyRetries  int           `env:"VERIFY_RETRIES"`
	VerifyInterval time.Duration `env:"VERIFY_INTERVAL"`
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			if err := godotenv.Load(); err != nil {
				log.Printf("Failed to load .env file: %v", err)
			}
		}

		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDSN returns the database/sql connection string used by goose.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetPoolURL returns the pgx pool connection URL.
func (c *Config) GetPoolURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.Name, c.Postgres.SslMode,
	)
}

// Location loads the configured timezone. An empty zone is UTC; an unknown one
// is a config error, since it decides the daily-cap day and the run times.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: APP_TIMEZONE %q: %v", apperrors.ErrConfig, c.App.Timezone, err)
	}
	return loc, nil
}

// GraphBase is the versioned Graph API root, e.g. https://graph.facebook.com/v18.0.
func (c *Config) GraphBase() string {
	if c.Meta.APIVersion == "" {
		return c.Meta.GraphURL
	}
	return c.Meta.GraphURL + "/" + c.Meta.APIVersion
}
