package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"bearing-alert.klederson.com/internal/alert"
	"bearing-alert.klederson.com/internal/angle"
	"bearing-alert.klederson.com/internal/bearing"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// Display
	AspectRatio   = 0.5                    // Terminal char aspect correction (chars are ~2:1 tall)
	TargetFPS     = 30                     // Target frames per second
	PulseFlash    = 300 * time.Millisecond // How long the face flashes after a haptic pulse
	HistoryLength = 120                    // Samples kept for the distance sparkline

	// Companion
	DefaultCompanyID = 0xFFFF // BLE manufacturer ID reserved for testing
	DemoBearingEvery = 12 * time.Second

	// App
	AppName    = "BEARING-ALERT"
	AppVersion = "1.0"

	envPrefix = "BEARING_ALERT_"
)

// Config holds the runtime settings of bearing-alert. Values come from
// defaults, then the YAML file, then BEARING_ALERT_* environment variables
// (a .env file is loaded first if present), then command line flags.
type Config struct {
	Threshold        int         `yaml:"threshold"`
	HeadingFilterDeg int         `yaml:"heading_filter_deg"`
	Demo             bool        `yaml:"demo"`
	Alert            AlertConfig `yaml:"alert"`
	Companion        Companion   `yaml:"companion"`
	Log              LogConfig   `yaml:"log"`
}

// AlertConfig selects the repeated-pulse policy.
type AlertConfig struct {
	Policy   string        `yaml:"policy"`
	Cooldown time.Duration `yaml:"cooldown"`
}

// Companion configures the transports that deliver bearing messages.
type Companion struct {
	Adapter   string `yaml:"adapter"`
	CompanyID uint16 `yaml:"company_id"`
	BLE       bool   `yaml:"ble"`
	Listen    string `yaml:"listen"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Threshold:        bearing.DefaultThreshold,
		HeadingFilterDeg: 10,
		Alert: AlertConfig{
			Policy:   alert.PolicyEvery.String(),
			Cooldown: alert.DefaultCooldown,
		},
		Companion: Companion{
			Adapter:   "hci0",
			CompanyID: DefaultCompanyID,
			BLE:       true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "loading .env")
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	var err error
	if c.Threshold, err = getEnvInt("THRESHOLD", c.Threshold); err != nil {
		return err
	}
	if c.HeadingFilterDeg, err = getEnvInt("HEADING_FILTER_DEG", c.HeadingFilterDeg); err != nil {
		return err
	}
	if c.Demo, err = getEnvBool("DEMO", c.Demo); err != nil {
		return err
	}
	c.Alert.Policy = getEnv("ALERT_POLICY", c.Alert.Policy)
	if v := getEnv("ALERT_COOLDOWN", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "%sALERT_COOLDOWN", envPrefix)
		}
		c.Alert.Cooldown = d
	}
	c.Companion.Adapter = getEnv("ADAPTER", c.Companion.Adapter)
	c.Companion.Listen = getEnv("LISTEN", c.Companion.Listen)
	if c.Companion.BLE, err = getEnvBool("BLE", c.Companion.BLE); err != nil {
		return err
	}
	if v := getEnv("COMPANY_ID", ""); v != "" {
		id, err := strconv.ParseUint(v, 0, 16)
		if err != nil {
			return errors.Wrapf(err, "%sCOMPANY_ID", envPrefix)
		}
		c.Companion.CompanyID = uint16(id)
	}
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
	return nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 180 {
		return errors.Errorf("threshold must be within [0, 180] degrees, got %d", c.Threshold)
	}
	if c.HeadingFilterDeg < 1 || c.HeadingFilterDeg > 180 {
		return errors.Errorf("heading filter must be within [1, 180] degrees, got %d", c.HeadingFilterDeg)
	}
	policy, err := alert.ParsePolicy(c.Alert.Policy)
	if err != nil {
		return err
	}
	if policy == alert.PolicyCooldown && c.Alert.Cooldown <= 0 {
		return errors.Errorf("cooldown policy needs a positive cooldown, got %s", c.Alert.Cooldown)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(err, "log level %q", c.Log.Level)
	}
	return nil
}

// HeadingFilter returns the minimum heading change, in device units, before
// the sensor feed delivers a new sample.
func (c *Config) HeadingFilter() angle.Raw {
	return angle.TrigMaxAngle * angle.Raw(c.HeadingFilterDeg) / 360
}

// AlertPolicy returns the parsed alert policy. Call after Validate.
func (c *Config) AlertPolicy() alert.Policy {
	p, _ := alert.ParsePolicy(c.Alert.Policy)
	return p
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Wrapf(err, "%s%s", envPrefix, key)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, errors.Wrapf(err, "%s%s", envPrefix, key)
	}
	return b, nil
}
