package naming

import "strings"

// FileSuffix marks a parameter name whose environment variable holds a
// file path instead of the value itself.
const FileSuffix = "__FILE"

// IsFileIndirect reports whether name ends with FileSuffix.
// The match is case-sensitive: "TOKEN__file" is a plain variable.
// Examples:
//   - "DB_PASSWORD__FILE" → true
//   - "DB_PASSWORD" → false
//   - "__FILE" → true
func IsFileIndirect(name string) bool {
	return strings.HasSuffix(name, FileSuffix)
}

// BaseName strips FileSuffix from name, if present.
// Examples:
//   - "DB_PASSWORD__FILE" → "DB_PASSWORD"
//   - "PORT" → "PORT"
func BaseName(name string) string {
	return strings.TrimSuffix(name, FileSuffix)
}

// ApplyPrefix prepends prefix to an environment variable name.
// If prefix is empty, returns the name unchanged.
// Examples:
//   - ApplyPrefix("APP_", "PORT") → "APP_PORT"
//   - ApplyPrefix("", "PORT") → "PORT"
func ApplyPrefix(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + name
}

// HasPrefixFold reports whether s begins with prefix, ignoring ASCII case
// when caseSensitive is false.
func HasPrefixFold(s, prefix string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.HasPrefix(s, prefix)
	}
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
