// Package sourceenv provides environment lookups for envsecret resolvers.
//
// Parameter names map to variables verbatim; an optional prefix is
// prepended (APP_ + PORT → APP_PORT).
//
// Example:
//
//	s := envsecret.New(envsecret.WithEnv(sourceenv.New(sourceenv.Options{Prefix: "APP_"})))
package sourceenv
