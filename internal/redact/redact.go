// Package redact scrubs sensitive material from strings before they
// reach logs or error responses: connection strings, credentials,
// signed tokens, email addresses, and raw SQL.
package redact

import "regexp"

// Placeholders substituted for matched sensitive content.
const (
	credentialPlaceholder = "[REDACTED_CREDENTIAL]"
	keyPlaceholder        = "[REDACTED_KEY]"
	tokenPlaceholder      = "[REDACTED_TOKEN]"
	emailPlaceholder      = "[REDACTED_EMAIL]"
	sqlPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; earlier rules win when patterns overlap
// (connection strings before bare host names, tokens before emails).
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres(ql)?|mysql)://[^@\s]+@`), credentialPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), credentialPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|secret|jwt_secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), keyPlaceholder},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), tokenPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), emailPlaceholder},
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)\s[\s\w,*()='"$.]*\b(FROM|INTO|SET|WHERE)\b[\s\w,*()='"$.]*`), sqlPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's message.
// A nil error yields an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
