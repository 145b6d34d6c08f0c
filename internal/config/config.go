package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/gubarz/sloc/internal/registry"
)

// Config holds the application configuration
type Config struct {
	Rules          string              `mapstructure:"rules"`
	Format         string              `mapstructure:"format"`
	Color          string              `mapstructure:"color"`
	Total          bool                `mapstructure:"total"`
	Verbose        bool                `mapstructure:"verbose"`
	ColorHeader    string              `mapstructure:"color_header"`
	ColorCode      string              `mapstructure:"color_code"`
	ColorBlank     string              `mapstructure:"color_blank"`
	ColorComment   string              `mapstructure:"color_comment"`
	ColorDelimiter string              `mapstructure:"color_delimiter"`
	ColorWarning   string              `mapstructure:"color_warning"`
	ExtraRules     []registry.RuleSpec `mapstructure:"extra_rules"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("rules", "")
	viper.SetDefault("format", "text")
	viper.SetDefault("color", "auto")
	viper.SetDefault("total", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("color_header", "36")    // Cyan
	viper.SetDefault("color_code", "32")      // Green
	viper.SetDefault("color_blank", "90")     // Gray
	viper.SetDefault("color_comment", "33")   // Yellow
	viper.SetDefault("color_delimiter", "90") // Gray
	viper.SetDefault("color_warning", "31")   // Red

	viper.SetConfigName("sloc")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "sloc"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SLOC")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// ConfigFile returns the config file in use, if any
func ConfigFile() string {
	return viper.ConfigFileUsed()
}

// GetRules returns the rule definition path as configured
func GetRules() string {
	return strings.TrimSpace(viper.GetString("rules"))
}

// GetFormat returns the output format
func GetFormat() string {
	return strings.ToLower(strings.TrimSpace(viper.GetString("format")))
}

// GetColor returns the color mode
func GetColor() string {
	return viper.GetString("color")
}

// GetTotal returns whether an aggregate over all files is printed
func GetTotal() bool {
	return viper.GetBool("total")
}

// GetVerbose returns whether diagnostics are written to stderr
func GetVerbose() bool {
	return viper.GetBool("verbose")
}

// GetColorHeader returns ANSI color code for headers
func GetColorHeader() string {
	return viper.GetString("color_header")
}

// GetColorCode returns ANSI color code for code line counts
func GetColorCode() string {
	return viper.GetString("color_code")
}

// GetColorBlank returns ANSI color code for blank line counts
func GetColorBlank() string {
	return viper.GetString("color_blank")
}

// GetColorComment returns ANSI color code for comment line counts
func GetColorComment() string {
	return viper.GetString("color_comment")
}

// GetColorDelimiter returns ANSI color code for the delimiter line
func GetColorDelimiter() string {
	return viper.GetString("color_delimiter")
}

// GetColorWarning returns ANSI color code for per-file errors
func GetColorWarning() string {
	return viper.GetString("color_warning")
}

// GetExtraRules returns comment rules declared in the config file
func GetExtraRules() []registry.RuleSpec {
	return C.ExtraRules
}
