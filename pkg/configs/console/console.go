// Package console reads configuration of the console server, scorchd.
package console

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// environment variables overriding the config file.
const (
	EnvApiRoot     = "SCORCH_API_ROOT"
	EnvFlashSecret = "SCORCH_FLASH_SECRET"
	EnvCobDate     = "SCORCH_COB_DATE"
)

var ErrInvalidConfig = errors.New("console: invalid config")

type BreakerConfig struct {
	// Circuit breaker opens when consecutive failures exceed this.
	MaxFailures uint32 `yaml:"maxFailures"`

	// Duration of the open state, like "5s".
	Timeout Duration `yaml:"timeout"`
}

type LogConfig struct {
	// Level of the server log: debug|info|warn|error|off
	Level string `yaml:"level"`

	// File receiving audit log of write operations. When empty, audit log goes to stderr.
	File string `yaml:"file"`

	// MaxSizeMB is the size of an audit log file to be rotated.
	MaxSizeMB int `yaml:"maxSizeMB"`

	// MaxBackups is the number of rotated audit log files to be kept.
	MaxBackups int `yaml:"maxBackups"`
}

type Config struct {
	ServerPort string `yaml:"serverPort"`

	// ScorchApiRoot is the URL of Scorch server. "/api/v2/..." is appended to it.
	ScorchApiRoot string `yaml:"scorchApiRoot"`

	// CA is a base64 encoded PEM of CA certificates to trust in addition to system ones.
	CA string `yaml:"ca"`

	// CobDate is the close-of-business date sent with job submissions.
	CobDate string `yaml:"cobDate"`

	// FlashSecret signs toast cookies.
	FlashSecret string `yaml:"flashSecret"`

	Breaker BreakerConfig `yaml:"breaker"`

	Log LogConfig `yaml:"log"`
}

// Duration is time.Duration written as "5s" in yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: duration: %w", ErrInvalidConfig, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Load reads the config file, then overrides it with environment variables.
//
// Variables in envFiles are loaded into the environment first,
// without overwriting those already set. Missing env files are ignored.
func Load(filepath string, envFiles ...string) (*Config, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	conf, err := Unmarshal(content)
	if err != nil {
		return nil, err
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	conf.overrideWith(os.LookupEnv)

	if err := conf.Verify(); err != nil {
		return nil, err
	}
	return conf, nil
}

func Unmarshal(conf []byte) (*Config, error) {
	out := Config{ServerPort: "8080"}
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Config) overrideWith(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvApiRoot); ok && v != "" {
		c.ScorchApiRoot = v
	}
	if v, ok := lookup(EnvFlashSecret); ok && v != "" {
		c.FlashSecret = v
	}
	if v, ok := lookup(EnvCobDate); ok && v != "" {
		c.CobDate = v
	}
}

// Verify checks required fields.
func (c *Config) Verify() error {
	if c.ScorchApiRoot == "" {
		return fmt.Errorf("%w: scorchApiRoot is missing", ErrInvalidConfig)
	}
	u, err := url.Parse(c.ScorchApiRoot)
	if err != nil {
		return fmt.Errorf("%w: scorchApiRoot: %w", ErrInvalidConfig, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: scorchApiRoot should be absolute: %s", ErrInvalidConfig, c.ScorchApiRoot)
	}
	if c.FlashSecret == "" {
		return fmt.Errorf("%w: flashSecret is missing", ErrInvalidConfig)
	}
	return nil
}
