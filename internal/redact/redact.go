// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or returned in error responses. Extraction
// and store errors can carry the Gemini API key, database file paths or the
// Redis address; this package keeps those out of the logs.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder    = "[REDACTED]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// API keys and tokens (the Gemini key travels in client errors)
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// File paths (sqlite database files, uploaded document paths)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)

	// Hosts with optional ports (the Redis address)
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// All patterns and their placeholders
	patterns = []*regexp.Regexp{
		apiKeyRegex, unixPathRegex, winPathRegex, hostPortRegex, stackTraceRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		apiKeyRegex:     RedactedKeyPlaceholder,
		unixPathRegex:   RedactedPathPlaceholder,
		winPathRegex:    RedactedPathPlaceholder,
		hostPortRegex:   "[REDACTED_HOST]",
		stackTraceRegex: "[STACK_TRACE_REDACTED]",
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
