// Package envsecret reads typed configuration values and secrets from the
// environment, with file indirection for mounted secrets.
//
// Quick Start:
//
//	s := envsecret.New()
//
//	port, err := s.Int(ctx, envsecret.Param{Name: "PORT", Default: envsecret.Some("8080")})
//	debug, err := s.Bool(ctx, envsecret.Param{Name: "DEBUG"})
//	pass, err := s.String(ctx, envsecret.Param{Name: "DB_PASSWORD__FILE", Required: true})
//
// A name ending in "__FILE" makes its variable hold a path; the file's
// full contents (untrimmed) become the value.
//
// Directive strings: ParseParam("NAME,default:val,required,secret,dir:/path")
//
// See example_test.go for detailed usage.
package envsecret
