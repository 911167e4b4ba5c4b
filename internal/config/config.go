// Package config binds defaults, environment variables, an optional .env
// file and an optional user config file into a single viper instance.
// Precedence: flags > env > user file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// UserConfigFile is the project-local config searched for in the working
// directory when --config is not given.
const UserConfigFile = ".caa.yaml"

func Init(root *cobra.Command) {
	viper.SetEnvPrefix("caa")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyProviderName, "deepseek")
	viper.SetDefault(KeyProviderModel, "deepseek-chat")
	viper.SetDefault(KeyProviderBaseURL, "https://api.deepseek.com/v1")
	viper.SetDefault(KeyTemperature, 0.7)
	viper.SetDefault(KeyMaxTokens, 500)
	viper.SetDefault(KeyCommitTypes, []string{"feat", "fix", "docs", "style", "refactor", "test", "chore"})
	viper.SetDefault(KeyMaxHeaderLength, 50)
	viper.SetDefault(KeyMaxBodyLength, 72)
	viper.SetDefault(KeyPRTitleFormat, "{type}({scope}): {description}")
	viper.SetDefault(KeyPRSections, []string{"Summary", "Changes", "Testing"})
	viper.SetDefault(KeySimplifyTokens, 3072)
	viper.SetDefault(KeyContextTokens, 6144)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLLMCallTimeout, "2m")
	viper.SetDefault(KeyLLMMaxRetries, 2)
	viper.SetDefault(KeyMaxAttempts, 3)
}

// LoadFile merges a user config file over the defaults key by key. With an
// empty path it looks for UserConfigFile in the working directory and is a
// no-op when the file does not exist; an explicit path must exist.
func LoadFile(path string) error {
	if path == "" {
		if _, err := os.Stat(UserConfigFile); err != nil {
			return nil
		}
		path = UserConfigFile
	}
	viper.SetConfigFile(path)
	if err := viper.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// APIKeyEnv returns the environment variable name holding the API key for
// the given provider, e.g. DEEPSEEK_API_KEY.
func APIKeyEnv(provider string) string {
	return strings.ToUpper(strings.TrimSpace(provider)) + "_API_KEY"
}

func ProviderName() string    { return viper.GetString(KeyProviderName) }
func ProviderModel() string   { return viper.GetString(KeyProviderModel) }
func ProviderBaseURL() string { return viper.GetString(KeyProviderBaseURL) }
func Temperature() float64    { return viper.GetFloat64(KeyTemperature) }
func MaxTokens() int          { return viper.GetInt(KeyMaxTokens) }
func CommitTypes() []string   { return viper.GetStringSlice(KeyCommitTypes) }
func MaxHeaderLength() int    { return viper.GetInt(KeyMaxHeaderLength) }
func MaxBodyLength() int      { return viper.GetInt(KeyMaxBodyLength) }
func PRTitleFormat() string   { return viper.GetString(KeyPRTitleFormat) }
func PRSections() []string    { return viper.GetStringSlice(KeyPRSections) }
func SimplifyTokens() int     { return viper.GetInt(KeySimplifyTokens) }
func ContextTokens() int      { return viper.GetInt(KeyContextTokens) }
func LogLevel() string        { return viper.GetString(KeyLogLevel) }
func LLMCallTimeout() string  { return viper.GetString(KeyLLMCallTimeout) }
func LLMMaxRetries() int      { return viper.GetInt(KeyLLMMaxRetries) }
func MaxAttempts() int        { return viper.GetInt(KeyMaxAttempts) }
func GitHubToken() string     { return viper.GetString(KeyGitHubToken) }

// Effective returns the fully merged configuration as a plain map, used by
// `caa config` to show what a run would use.
func Effective() map[string]any {
	return viper.AllSettings()
}
