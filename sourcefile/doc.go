// Package sourcefile reads file-indirected secrets and decodes structured
// values in JSON, YAML, or TOML.
//
// Format is auto-detected from extension (.json, .yaml, .yml, .toml).
//
// Example:
//
//	r := sourcefile.Reader{MaxSize: 1 << 20}
//	text, err := r.ReadFile("/run/secrets/db_password")
//	obj, err := sourcefile.Decode("yaml", []byte(text))
package sourcefile
