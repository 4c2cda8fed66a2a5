package logging

import (
	"strings"
)

const redactedValue = "[REDACTED]"

// Redactor handles secret redaction in log fields.
type Redactor struct {
	sensitiveKeys map[string]bool
}

// NewRedactor creates a new Redactor with default sensitive keys.
func NewRedactor() *Redactor {
	return &Redactor{
		sensitiveKeys: map[string]bool{
			// Credentials
			"password":    true,
			"secret":      true,
			"key":         true,
			"private_key": true,
			"token":       true,

			// Session identifiers
			"session":       true,
			"srpsession":    true,
			"sharedsession": true,

			// SRP protocol values
			"a":                   true, // client ephemeral secret
			"b":                   true, // server ephemeral secret
			"x":                   true, // password-derived exponent
			"s":                   true, // premaster secret
			"proof":               true,
			"clientproof":         true,
			"serverproof":         true,
			"expectedserverproof": true,
			"m1":                  true,
			"m2":                  true,
			"verifier":            true,
			"salt":                true,
		},
	}
}

// RedactFields redacts sensitive values from a map of fields. Raw byte
// slices are always redacted since every []byte handled here is SRP material.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))

	for k, v := range fields {
		if _, raw := v.([]byte); raw || r.isSensitiveKey(k) {
			redacted[k] = redactedValue
		} else if nested, ok := v.(map[string]any); ok {
			// Recursively redact nested maps
			redacted[k] = r.RedactFields(nested)
		} else {
			redacted[k] = v
		}
	}

	return redacted
}

// RedactString replaces s entirely when it contains a "key=value",
// "key: value" or JSON "key": pair for a sensitive key.
func (r *Redactor) RedactString(s string) string {
	lower := strings.ToLower(s)

	for key := range r.sensitiveKeys {
		patterns := []string{
			key + "=",
			key + ": ",
			"\"" + key + "\":",
		}

		for _, pattern := range patterns {
			if containsWord(lower, pattern) {
				return redactedValue
			}
		}
	}

	return s
}

// containsWord reports whether pattern occurs in s at a word boundary, so
// that short keys such as "a" do not match inside "data=".
func containsWord(s, pattern string) bool {
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], pattern)
		if j < 0 {
			return false
		}
		j += i
		if j == 0 || !isWordByte(s[j-1]) {
			return true
		}
		i = j + 1
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// isSensitiveKey checks if a field key is marked as sensitive.
func (r *Redactor) isSensitiveKey(key string) bool {
	// Only check exact match (case-insensitive)
	// Substring matching was too aggressive and caught legitimate fields
	return r.sensitiveKeys[strings.ToLower(key)]
}
