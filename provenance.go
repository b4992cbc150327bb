package envsecret

// Origin identifies where a resolved value came from.
type Origin int

const (
	// OriginNone means no value was found and no default applied.
	OriginNone Origin = iota
	// OriginEnv means the value was read directly from an environment variable.
	OriginEnv
	// OriginFile means the value was read from the file named by an
	// environment variable.
	OriginFile
	// OriginDefault means the parameter's default was used.
	OriginDefault
)

// String returns a short label for the origin.
func (o Origin) String() string {
	switch o {
	case OriginEnv:
		return "env"
	case OriginFile:
		return "file"
	case OriginDefault:
		return "default"
	default:
		return "none"
	}
}

// Resolution is the outcome of a lookup, with provenance.
type Resolution struct {
	Value  Optional[string]
	Origin Origin
	// Detail names the concrete source (e.g., "env:PORT",
	// "file:/run/secrets/db_password"). Empty for OriginNone.
	Detail string
	// Path is the file that was read, for OriginFile.
	Path string
}

// Source formats the origin for display (e.g., "env:PORT", "default").
func (r Resolution) Source() string {
	if r.Detail != "" {
		return r.Detail
	}
	return r.Origin.String()
}
