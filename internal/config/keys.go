package config

const (
	KeyProviderName    = "provider.name"
	KeyProviderModel   = "provider.model"
	KeyProviderBaseURL = "provider.base_url"
	KeyTemperature     = "provider.temperature"
	KeyMaxTokens       = "provider.max_tokens"
	KeyCommitTypes     = "commit.types"
	KeyMaxHeaderLength = "commit.max_header_length"
	KeyMaxBodyLength   = "commit.max_body_length"
	KeyPRTitleFormat   = "pr.template.title_format"
	KeyPRSections      = "pr.template.sections"
	KeySimplifyTokens  = "diff.simplify_threshold"
	KeyContextTokens   = "diff.context_tokens"
	KeyLogLevel        = "log_level"
	KeyLLMCallTimeout  = "llm_call_timeout"
	KeyLLMMaxRetries   = "llm_max_retries"
	KeyMaxAttempts     = "max_attempts"
	KeyGitHubToken     = "github_token"
)
