package sourcefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported structured formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ErrTooLarge is returned when a file exceeds Reader.MaxSize.
var ErrTooLarge = errors.New("sourcefile: file exceeds size limit")

// ErrUnsupportedFormat is returned by Decode for unknown formats.
var ErrUnsupportedFormat = errors.New("sourcefile: unsupported format")

// Reader reads whole files as UTF-8 text.
// The zero value is ready to use.
type Reader struct {
	// MaxSize caps the number of bytes read. Zero means unlimited.
	MaxSize int64
}

// ReadFile returns the full contents of path. Nothing is trimmed; a
// trailing newline stays part of the value. Invalid UTF-8 sequences are
// replaced with U+FFFD.
//
// Errors from the filesystem are returned as-is so callers can match
// them with errors.Is(err, fs.ErrNotExist) and friends.
func (r Reader) ReadFile(path string) (string, error) {
	if r.MaxSize <= 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return toText(data), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, r.MaxSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > r.MaxSize {
		return "", fmt.Errorf("%w: %s (limit %d bytes)", ErrTooLarge, path, r.MaxSize)
	}
	return toText(data), nil
}

func toText(data []byte) string {
	return strings.ToValidUTF8(string(data), "\uFFFD")
}

// Decode parses data as a structured object in the given format.
// JSON decoding is strict: trailing data and non-object documents fail.
func Decode(format string, data []byte) (map[string]any, error) {
	var out map[string]any
	if err := DecodeInto(format, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeInto parses data in the given format into v, which must be a
// non-nil pointer.
func DecodeInto(format string, data []byte, v any) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse JSON: %w", err)
		}
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse TOML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q (supported: json, yaml, toml)", ErrUnsupportedFormat, format)
	}
	return nil
}

// InferFormat returns the structured format implied by the extension of
// path, or "" when the extension is not recognized.
func InferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return ""
	}
}
