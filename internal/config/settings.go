package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. TAXCALC_EMAIL_ENABLED
const EnvPrefix = "TAXCALC"

// Settings holds application-level configuration. Taxpayer data and tax
// rules live in their own documents; these settings only steer the tool.
type Settings struct {
	Logging LoggingSettings `mapstructure:"logging"`
	Output  OutputSettings  `mapstructure:"output"`
	Rules   RulesSettings   `mapstructure:"rules"`
	Firm    FirmSettings    `mapstructure:"firm"`
	Email   EmailSettings   `mapstructure:"email"`
}

// LoggingSettings controls the zap logger
type LoggingSettings struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json or console
	OutputFile string `mapstructure:"output_file"`
}

// OutputSettings picks the default report format and destination
type OutputSettings struct {
	Format    string `mapstructure:"format"`
	Directory string `mapstructure:"directory"`
}

// RulesSettings points at an optional external rules file
type RulesSettings struct {
	File           string `mapstructure:"file"`
	AssessmentYear string `mapstructure:"assessment_year"`
}

// FirmSettings brands generated reports and outgoing mail
type FirmSettings struct {
	Name    string `mapstructure:"name"`
	Tagline string `mapstructure:"tagline"`
	Email   string `mapstructure:"email"`
	Website string `mapstructure:"website"`
}

// EmailSettings configures the transactional email API client
type EmailSettings struct {
	Enabled                bool          `mapstructure:"enabled"`
	Endpoint               string        `mapstructure:"endpoint"`
	ServiceID              string        `mapstructure:"service_id"`
	ContactTemplateID      string        `mapstructure:"contact_template_id"`
	NotificationTemplateID string        `mapstructure:"notification_template_id"`
	PublicKey              string        `mapstructure:"public_key"`
	PrivateKey             string        `mapstructure:"private_key"`
	AdminEmail             string        `mapstructure:"admin_email"`
	Timeout                time.Duration `mapstructure:"timeout"`
	MaxRetries             int           `mapstructure:"max_retries"`
	InitialBackoff         time.Duration `mapstructure:"initial_backoff"`
}

// TemplateFor returns the notification template, falling back to the contact template
func (e EmailSettings) TemplateFor(notification bool) string {
	if notification && e.NotificationTemplateID != "" {
		return e.NotificationTemplateID
	}
	return e.ContactTemplateID
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")

	v.SetDefault("output.format", "console")
	v.SetDefault("output.directory", ".")

	v.SetDefault("rules.file", "")
	v.SetDefault("rules.assessment_year", "")

	v.SetDefault("firm.name", "Sahni & Co. - Chartered Accountants")
	v.SetDefault("firm.tagline", "Professional Tax Computation Report")
	v.SetDefault("firm.email", "contact@sahnico.com")
	v.SetDefault("firm.website", "www.sahnico.com")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.endpoint", "https://api.emailjs.com/api/v1.0/email/send")
	v.SetDefault("email.service_id", "")
	v.SetDefault("email.contact_template_id", "")
	v.SetDefault("email.notification_template_id", "")
	v.SetDefault("email.public_key", "")
	v.SetDefault("email.private_key", "")
	v.SetDefault("email.admin_email", "")
	v.SetDefault("email.timeout", 10*time.Second)
	v.SetDefault("email.max_retries", 3)
	v.SetDefault("email.initial_backoff", 200*time.Millisecond)
}

// LoadSettings reads settings from an optional YAML file and TAXCALC_* environment
// variables, in that order of increasing precedence over the defaults.
func LoadSettings(configPath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", configPath, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks settings that would otherwise fail late
func (s *Settings) Validate() error {
	switch s.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	if !s.Email.Enabled {
		return nil
	}
	if s.Email.Endpoint == "" || s.Email.ServiceID == "" || s.Email.ContactTemplateID == "" || s.Email.PublicKey == "" {
		return fmt.Errorf("email is enabled but endpoint, service_id, contact_template_id or public_key is missing")
	}
	if s.Email.MaxRetries < 0 {
		return fmt.Errorf("email.max_retries cannot be negative")
	}
	return nil
}
