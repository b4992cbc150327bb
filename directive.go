package envsecret

import (
	"fmt"
	"strings"
)

// ParseParam builds a Param from a directive string.
// Format: "NAME,directive1:value1,directive2,..."
//
// Directives: default:val, required, secret, dir:/path. The name may also
// be given as name:NAME. Boolean directives can omit `:true`
// ("required" == "required:true").
//
// Commas inside a default value are kept unless they are followed by
// another directive, so "CORS,default:a,b,c,required" has default "a,b,c".
//
// Examples:
//
//	ParseParam("PORT,default:8080")
//	ParseParam("DB_PASSWORD__FILE,required,secret,dir:/run/secrets")
func ParseParam(directive string) (Param, error) {
	var p Param

	for i, d := range splitDirectives(directive) {
		trimmed := strings.TrimSpace(d)
		if trimmed == "" {
			continue
		}

		parts := strings.SplitN(trimmed, ":", 2)
		key := strings.TrimSpace(parts[0])
		var value string
		hasValue := len(parts) > 1
		if hasValue {
			// Don't trim default values - whitespace may be intentional.
			value = strings.SplitN(d, ":", 2)[1]
		}

		switch key {
		case "name":
			p.Name = strings.TrimSpace(value)
		case "default":
			p.Default = Some(value)
		case "required":
			b, ok := parseFlag(value)
			if !ok {
				return Param{}, newInvalidParamError(p.Name, fmt.Sprintf("directive %s: expected true or false, got %q", key, value))
			}
			p.Required = b
		case "secret":
			b, ok := parseFlag(value)
			if !ok {
				return Param{}, newInvalidParamError(p.Name, fmt.Sprintf("directive %s: expected true or false, got %q", key, value))
			}
			p.Secret = b
		case "dir":
			p.FileDir = strings.TrimSpace(value)
		default:
			if i == 0 && !hasValue {
				p.Name = key
				continue
			}
			return Param{}, newInvalidParamError(p.Name, fmt.Sprintf("unknown directive %q", key))
		}
	}

	if err := p.Validate(); err != nil {
		return Param{}, err
	}
	return p, nil
}

// MustParseParam is like ParseParam but panics on error.
// Intended for package-level parameter declarations.
func MustParseParam(directive string) Param {
	p, err := ParseParam(directive)
	if err != nil {
		panic(err)
	}
	return p
}

// parseFlag reads a boolean directive value; empty means true.
func parseFlag(value string) (bool, bool) {
	switch strings.TrimSpace(value) {
	case "", "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

var knownDirectives = []string{"name:", "default:", "required", "secret", "dir:"}

// splitDirectives splits a directive string on commas, keeping commas
// that belong to a default value.
func splitDirectives(s string) []string {
	var directives []string
	var current strings.Builder
	inDefault := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if !inDefault && current.Len() == 0 && strings.HasPrefix(strings.TrimLeft(s[i:], " "), "default:") {
			inDefault = true
		}

		if ch != ',' {
			current.WriteByte(ch)
			continue
		}

		if inDefault && !startsWithDirective(s[i+1:]) {
			current.WriteByte(ch)
			continue
		}

		inDefault = false
		directives = append(directives, current.String())
		current.Reset()
	}

	if current.Len() > 0 {
		directives = append(directives, current.String())
	}
	return directives
}

// startsWithDirective checks if s starts with a known directive name.
func startsWithDirective(s string) bool {
	s = strings.TrimSpace(s)
	for _, d := range knownDirectives {
		if strings.HasPrefix(s, d) {
			return true
		}
	}
	return false
}
