// Package redact scrubs credentials, email addresses, file paths and SQL
// out of strings before they are logged or returned in error responses.
package redact

import (
	"log/slog"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// Rules run in order; earlier rules see the raw input.
var rules = []rule{
	// user:password@ in connection URLs (redis://, sqlite file URIs with auth, ...)
	{regexp.MustCompile(`(?i)([a-z][a-z0-9+.-]*)://[^@\s/]+@`), "$1://" + RedactedCredentialPlaceholder + "@"},
	// bcrypt hashes
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), RedactedHashPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]+['"]?)[^'"&\s]{3,}`), "$1$2" + RedactedCredentialPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE)\b[^;]*?\b(FROM|INTO|SET|TABLE)\b[^;]*`), RedactedSQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// ErrorAttr is the "error" log attribute for err, redacted.
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
