package envsecret

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Azhovan/envsecret/internal/naming"
)

// Optional distinguishes "not set" from "zero value".
// An absent value and an empty string are never conflated.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some wraps v as a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the wrapped value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrDefault returns the wrapped value or the provided default.
func (o Optional[T]) OrDefault(defaultVal T) T {
	if o.Set {
		return o.Value
	}
	return defaultVal
}

// Param describes one lookup request. It carries no resolved value and
// is re-resolved on every call.
type Param struct {
	// Name is the environment variable key. A name ending in "__FILE"
	// makes the variable hold a path to a file containing the value.
	Name string `validate:"required,envname"`

	// Default is substituted when no value is found.
	Default Optional[string]

	// Required fails resolution when neither a value nor a default exists.
	Required bool

	// FileDir documents the directory expected to hold the file for
	// "__FILE" names. It is not consulted during resolution.
	FileDir string

	// Secret hides the value from logs and CLI output.
	Secret bool
}

// WithDefault returns a copy of p with d as its default.
func (p Param) WithDefault(d string) Param {
	p.Default = Some(d)
	return p
}

// FileIndirect reports whether p resolves through a file path.
func (p Param) FileIndirect() bool {
	return naming.IsFileIndirect(p.Name)
}

var paramValidator = newParamValidator()

func newParamValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Environment keys cannot contain '=' or NUL.
	mustRegisterValidation(v, "envname", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "=\x00")
	})
	return v
}

// mustRegisterValidation panics if tag cannot be registered.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("envsecret: register %q validation: %v", tag, err))
	}
}

// Validate checks that p can be used as a lookup key.
func (p Param) Validate() error {
	err := paramValidator.Struct(p)
	if err == nil {
		return nil
	}

	var reasons []string
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			reasons = append(reasons, fmt.Sprintf("%s failed %q check", fe.Field(), fe.Tag()))
		}
	} else {
		reasons = append(reasons, err.Error())
	}
	return newInvalidParamError(p.Name, strings.Join(reasons, ", "))
}

// Env looks up environment variables.
type Env interface {
	// Lookup returns the value of name and whether it is set.
	Lookup(name string) (string, bool)
}

// EnvFunc is a function adapter for the Env interface.
type EnvFunc func(name string) (string, bool)

func (f EnvFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// FileReader reads the full text of a file.
type FileReader interface {
	// ReadFile returns the contents of path. Filesystem errors are
	// returned without translation.
	ReadFile(path string) (string, error)
}
