package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port           string
	DBName         string
	Turso          TursoConfig
	Local          *time.Location
	Reporting      *time.Location
	RequestTimeout time.Duration
	BcryptCost     int
	LoginPerMinute int
	TrustProxy     bool
	LogLevel       string
	StaticDir      string
	Slack          SlackConfig
	ProjectID      string
	PubSubTopic    string
}

type TursoConfig struct {
	PrimaryURL string `env:"PRIMARY_URL"`
	AuthToken  string `env:"AUTH_TOKEN"`
}

type SlackConfig struct {
	Token     string `env:"BOT_TOKEN"`
	ChannelID string `env:"CHANNEL_ID"`
	DryRun    bool   `env:"DRY_RUN"`
}

// Enabled reports whether match notifications should be posted.
func (s SlackConfig) Enabled() bool {
	return s.ChannelID != "" && (s.Token != "" || s.DryRun)
}

// PubSubEnabled reports whether match events should be published.
func (c Config) PubSubEnabled() bool {
	return c.ProjectID != "" && c.PubSubTopic != ""
}

// environment is the raw shape read from the process environment.
type environment struct {
	Port           string        `env:"PORT,required"`
	DBName         string        `env:"DB_NAME,required"`
	Turso          TursoConfig   `envPrefix:"TURSO_"`
	LocalZone      string        `env:"LOCAL_TIMEZONE" envDefault:"America/Toronto"`
	ReportingZone  string        `env:"REPORTING_TIMEZONE" envDefault:"UTC"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"10"`
	LoginPerMinute int           `env:"LOGIN_RATE_PER_MIN" envDefault:"10"`
	TrustProxy     bool          `env:"TRUST_PROXY"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir      string        `env:"STATIC_DIR"`
	Slack          SlackConfig   `envPrefix:"SLACK_"`
	ProjectID      string        `env:"GCP_PROJECT"`
	PubSubTopic    string        `env:"PUBSUB_TOPIC"`
}
