package security

import (
	"regexp"
	"strings"
)

// blockedEnvKeyPatterns matches environment variable names that carry
// credentials. Keys matching any pattern are dropped before the environment
// reaches a sandbox container.
var blockedEnvKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^ANTHROPIC_API_KEY$`),
	regexp.MustCompile(`(?i)^OPENAI_API_KEY$`),
	regexp.MustCompile(`(?i)^GEMINI_API_KEY$`),
	regexp.MustCompile(`(?i)^OPENROUTER_API_KEY$`),
	regexp.MustCompile(`(?i)^TELEGRAM_BOT_TOKEN$`),
	regexp.MustCompile(`(?i)^DISCORD_BOT_TOKEN$`),
	regexp.MustCompile(`(?i)^SLACK_(BOT|APP)_TOKEN$`),
	regexp.MustCompile(`(?i)^AWS_(SECRET_ACCESS_KEY|SECRET_KEY|SESSION_TOKEN)$`),
	regexp.MustCompile(`(?i)^(GH|GITHUB)_TOKEN$`),
	regexp.MustCompile(`(?i)^(AZURE|AZURE_OPENAI|COHERE)_API_KEY$`),
	regexp.MustCompile(`(?i)_?(API_KEY|TOKEN|PASSWORD|PRIVATE_KEY|SECRET)$`),
}

// SanitizeEnv returns a copy of in with credential-bearing keys, blank keys,
// and NUL-bearing values removed. Returns nil when nothing survives.
func SanitizeEnv(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for rawKey, value := range in {
		key := strings.TrimSpace(rawKey)
		if key == "" {
			continue
		}
		if isBlockedEnvKey(key) {
			continue
		}
		if strings.Contains(value, "\x00") {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isBlockedEnvKey(key string) bool {
	for _, pattern := range blockedEnvKeyPatterns {
		if pattern.MatchString(key) {
			return true
		}
	}
	return false
}
