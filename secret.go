package envsecret

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Azhovan/envsecret/sourcefile"
)

// Secret coerces resolved parameters into typed values. Each method
// resolves p once through the Resolver, then parses the raw string.
// Nothing is cached between calls.
type Secret struct {
	resolver *Resolver
}

// New creates a Secret with a Resolver built from opts.
func New(opts ...Option) *Secret {
	return &Secret{resolver: NewResolver(opts...)}
}

// NewSecret creates a Secret on top of an existing Resolver.
func NewSecret(r *Resolver) *Secret {
	if r == nil {
		r = NewResolver()
	}
	return &Secret{resolver: r}
}

// Resolver returns the underlying Resolver.
func (s *Secret) Resolver() *Resolver {
	return s.resolver
}

// String returns the raw value unchanged. Absent stays absent.
func (s *Secret) String(ctx context.Context, p Param) (Optional[string], error) {
	return s.resolver.Resolve(ctx, p)
}

// Bool reports whether the value equals "true", ignoring case. Anything
// else, including an absent value, is false. Only resolution can fail.
func (s *Secret) Bool(ctx context.Context, p Param) (bool, error) {
	val, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return false, err
	}
	return ParseBool(val), nil
}

// Int parses the leading base-10 integer of the value ("123abc" is 123,
// "08" is 8). Returns ErrInvalidNumericValue when there is none, or when
// the digits overflow int64.
func (s *Secret) Int(ctx context.Context, p Param) (Optional[int64], error) {
	val, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return None[int64](), err
	}
	return ParseInt(p, val)
}

// Float parses the leading floating-point number of the value, with
// decimal point and e/E exponent support. Returns ErrInvalidNumericValue
// when there is none.
func (s *Secret) Float(ctx context.Context, p Param) (Optional[float64], error) {
	val, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return None[float64](), err
	}
	return ParseFloat(p, val)
}

// Duration parses the whole value with time.ParseDuration ("30s", "1h5m").
func (s *Secret) Duration(ctx context.Context, p Param) (Optional[time.Duration], error) {
	val, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return None[time.Duration](), err
	}
	return ParseDuration(p, val)
}

// JSON strictly decodes the value as a JSON object. The literal null
// yields a present nil map. Arrays and scalars are rejected.
// Returns ErrInvalidJSON when decoding fails.
func (s *Secret) JSON(ctx context.Context, p Param) (Optional[map[string]any], error) {
	return s.object(ctx, p, sourcefile.FormatJSON)
}

// YAML decodes the value as a YAML mapping.
func (s *Secret) YAML(ctx context.Context, p Param) (Optional[map[string]any], error) {
	return s.object(ctx, p, sourcefile.FormatYAML)
}

// TOML decodes the value as a TOML document.
func (s *Secret) TOML(ctx context.Context, p Param) (Optional[map[string]any], error) {
	return s.object(ctx, p, sourcefile.FormatTOML)
}

func (s *Secret) object(ctx context.Context, p Param, format string) (Optional[map[string]any], error) {
	val, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return None[map[string]any](), err
	}
	return ParseObject(p, val, format)
}

// The Parse functions coerce a value that was already resolved, for
// callers that also need the Resolution from Resolver.Lookup. p is used
// only to name the parameter in errors.

// ParseBool is the coercion behind Secret.Bool.
func ParseBool(val Optional[string]) bool {
	return val.Set && strings.ToLower(val.Value) == "true"
}

// ParseInt is the coercion behind Secret.Int.
func ParseInt(p Param, val Optional[string]) (Optional[int64], error) {
	if !val.Set {
		return None[int64](), nil
	}
	n, ok := parseIntPrefix(val.Value)
	if !ok {
		return None[int64](), newNumericError(p.Name, "integer", val.Value)
	}
	return Some(n), nil
}

// ParseFloat is the coercion behind Secret.Float.
func ParseFloat(p Param, val Optional[string]) (Optional[float64], error) {
	if !val.Set {
		return None[float64](), nil
	}
	f, ok := parseFloatPrefix(val.Value)
	if !ok {
		return None[float64](), newNumericError(p.Name, "float", val.Value)
	}
	return Some(f), nil
}

// ParseDuration is the coercion behind Secret.Duration.
func ParseDuration(p Param, val Optional[string]) (Optional[time.Duration], error) {
	if !val.Set {
		return None[time.Duration](), nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(val.Value))
	if err != nil {
		return None[time.Duration](), newNumericError(p.Name, "duration", val.Value)
	}
	return Some(d), nil
}

// ParseObject decodes val as a json, yaml, or toml object, the coercion
// behind Secret.JSON, Secret.YAML and Secret.TOML.
func ParseObject(p Param, val Optional[string], format string) (Optional[map[string]any], error) {
	if !val.Set {
		return None[map[string]any](), nil
	}
	obj, err := sourcefile.Decode(format, []byte(val.Value))
	if err != nil {
		if errors.Is(err, sourcefile.ErrUnsupportedFormat) {
			return None[map[string]any](), err
		}
		return None[map[string]any](), newDecodeError(p.Name, strings.ToUpper(format), err)
	}
	return Some(obj), nil
}

// Decode decodes the value into v (a non-nil pointer). An empty format
// is inferred from the file extension for "__FILE" parameters and falls
// back to JSON. Returns false when the value is absent and v is untouched.
func (s *Secret) Decode(ctx context.Context, p Param, format string, v any) (bool, error) {
	res, err := s.resolver.Lookup(ctx, p)
	if err != nil || !res.Value.Set {
		return false, err
	}
	if format == "" {
		format = sourcefile.InferFormat(res.Path)
	}
	if format == "" {
		format = sourcefile.FormatJSON
	}
	if derr := sourcefile.DecodeInto(format, []byte(res.Value.Value), v); derr != nil {
		if errors.Is(derr, sourcefile.ErrUnsupportedFormat) {
			return false, derr
		}
		return false, newDecodeError(p.Name, strings.ToUpper(format), derr)
	}
	return true, nil
}
