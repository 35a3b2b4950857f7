package contract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/motionforge/motionforge/schema"
)

// Default engine gains for the tracking controller. Stiff enough to
// follow 30 fps capture targets, damped at critical ratio.
const (
	DefaultKp           = 900.0
	DefaultKd           = 60.0
	DefaultMaxSubstep   = 0.002 // seconds
	DefaultMaxRootDrift = 10.0  // meters of root error before declaring divergence
)

// DefaultCropEnd is a window end far past any real recording, so the
// default crop keeps the whole clip.
const DefaultCropEnd = 1e9

// ConfigRawInput holds the raw, unvalidated configuration from all
// sources (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	StartTime       float64 `mapstructure:"start"`
	EndTime         float64 `mapstructure:"end"`
	InputFPS        float64 `mapstructure:"input-fps"`
	OutputFPS       float64 `mapstructure:"output-fps"`
	KeepRoot        bool    `mapstructure:"keep-root"`
	Name            string  `mapstructure:"name"`
	OutputFile      string  `mapstructure:"output-file"`
	Publish         bool    `mapstructure:"publish"`
	RegistryBackend string  `mapstructure:"registry-backend"`
	RegistryConnect string  `mapstructure:"registry-db-connect"`
	Kp              float64 `mapstructure:"kp"`
	Kd              float64 `mapstructure:"kd"`
	MaxSubstep      float64 `mapstructure:"max-substep"`
	MaxRootDrift    float64 `mapstructure:"max-root-drift"`
	Width           int     `mapstructure:"width"`
	ColorStr        string  `mapstructure:"color"`
	LogLevel        string  `mapstructure:"log-level"`

	// InputFiles comes from positional arguments, not Viper.
	InputFiles []string `mapstructure:"-"`
}

// Config is the final, validated runtime configuration.
type Config struct {
	InputFiles []string
	Crop       schema.CropSpec
	KeepRoot   bool

	Name       string
	OutputFile string
	Publish    bool

	OutputFPS float64

	RegistryBackend schema.RegistryBackend
	RegistryConnect string

	Kp           float64
	Kd           float64
	MaxSubstep   float64
	MaxRootDrift float64

	Width    int
	Color    bool
	LogLevel string
}

// ProcessAndValidate converts raw input into the validated Config,
// failing on the first bad value.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if len(input.InputFiles) == 0 {
		return fmt.Errorf("at least one input file is required")
	}
	cfg.InputFiles = input.InputFiles

	if input.InputFPS <= 0 {
		return fmt.Errorf("input-fps must be positive, got %v", input.InputFPS)
	}
	if input.OutputFPS <= 0 {
		return fmt.Errorf("output-fps must be positive, got %v", input.OutputFPS)
	}
	cfg.Crop = schema.CropSpec{
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		FPS:       input.InputFPS,
	}
	cfg.OutputFPS = input.OutputFPS
	cfg.KeepRoot = input.KeepRoot

	cfg.Name = input.Name
	if cfg.Name == "" {
		base := filepath.Base(input.InputFiles[0])
		cfg.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	cfg.OutputFile = input.OutputFile
	cfg.Publish = input.Publish

	backend, err := ParseRegistryBackend(input.RegistryBackend)
	if err != nil {
		return err
	}
	cfg.RegistryBackend = backend
	cfg.RegistryConnect = input.RegistryConnect

	if input.Kp <= 0 || input.Kd < 0 {
		return fmt.Errorf("engine gains must satisfy kp > 0 and kd >= 0, got kp=%v kd=%v", input.Kp, input.Kd)
	}
	if input.MaxSubstep <= 0 {
		return fmt.Errorf("max-substep must be positive, got %v", input.MaxSubstep)
	}
	if input.MaxRootDrift <= 0 {
		return fmt.Errorf("max-root-drift must be positive, got %v", input.MaxRootDrift)
	}
	cfg.Kp = input.Kp
	cfg.Kd = input.Kd
	cfg.MaxSubstep = input.MaxSubstep
	cfg.MaxRootDrift = input.MaxRootDrift

	cfg.Width = input.Width
	cfg.Color = ParseBoolFlag(input.ColorStr, true)
	cfg.LogLevel = input.LogLevel

	return nil
}

// ParseRegistryBackend maps a backend string onto the enum. Empty means
// the default SQLite backend.
func ParseRegistryBackend(s string) (schema.RegistryBackend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(schema.SQLiteBackend):
		return schema.SQLiteBackend, nil
	case string(schema.MySQLBackend):
		return schema.MySQLBackend, nil
	case string(schema.PostgreSQLBackend), "postgres":
		return schema.PostgreSQLBackend, nil
	case string(schema.NoneBackend):
		return schema.NoneBackend, nil
	default:
		return "", fmt.Errorf("unsupported registry backend: %q (expected sqlite, mysql, postgresql, or none)", s)
	}
}

// ParseBoolFlag accepts the usual yes/no spellings, falling back to the
// provided default for anything unrecognized.
func ParseBoolFlag(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
