package envsecret

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv is a fixed environment for resolver tests.
type testEnv map[string]string

func (e testEnv) Lookup(name string) (string, bool) {
	v, ok := e[name]
	return v, ok
}

// recordingFiles serves file contents from memory and records every read.
type recordingFiles struct {
	files map[string]string
	reads []string
}

func (f *recordingFiles) ReadFile(path string) (string, error) {
	f.reads = append(f.reads, path)
	content, ok := f.files[path]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return content, nil
}

func TestResolver_Resolve_Env(t *testing.T) {
	tests := []struct {
		name       string
		env        testEnv
		param      Param
		want       Optional[string]
		wantOrigin Origin
	}{
		{
			name:       "set variable",
			env:        testEnv{"PORT": "3000"},
			param:      Param{Name: "PORT"},
			want:       Some("3000"),
			wantOrigin: OriginEnv,
		},
		{
			name:       "empty variable is present",
			env:        testEnv{"PORT": ""},
			param:      Param{Name: "PORT"},
			want:       Some(""),
			wantOrigin: OriginEnv,
		},
		{
			name:       "unset without default",
			env:        testEnv{},
			param:      Param{Name: "PORT"},
			want:       None[string](),
			wantOrigin: OriginNone,
		},
		{
			name:       "unset with default",
			env:        testEnv{},
			param:      Param{Name: "PORT", Default: Some("8080")},
			want:       Some("8080"),
			wantOrigin: OriginDefault,
		},
		{
			name:       "empty default is a default",
			env:        testEnv{},
			param:      Param{Name: "PORT", Default: Some("")},
			want:       Some(""),
			wantOrigin: OriginDefault,
		},
		{
			name:       "value wins over default",
			env:        testEnv{"PORT": "3000"},
			param:      Param{Name: "PORT", Default: Some("8080")},
			want:       Some("3000"),
			wantOrigin: OriginEnv,
		},
		{
			name:       "required with default uses default",
			env:        testEnv{},
			param:      Param{Name: "PORT", Default: Some("8080"), Required: true},
			want:       Some("8080"),
			wantOrigin: OriginDefault,
		},
		{
			name:       "required and set",
			env:        testEnv{"PORT": "3000"},
			param:      Param{Name: "PORT", Required: true},
			want:       Some("3000"),
			wantOrigin: OriginEnv,
		},
		{
			name:       "lowercase file suffix is a plain variable",
			env:        testEnv{"TOKEN__file": "/not/a/path"},
			param:      Param{Name: "TOKEN__file"},
			want:       Some("/not/a/path"),
			wantOrigin: OriginEnv,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &recordingFiles{}
			r := NewResolver(WithEnv(tt.env), WithFileReader(files))

			res, err := r.Lookup(context.Background(), tt.param)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, tt.wantOrigin, res.Origin)
			assert.Empty(t, files.reads)

			got, err := r.Resolve(context.Background(), tt.param)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Resolve_RequiredMissing(t *testing.T) {
	r := NewResolver(WithEnv(testEnv{}))

	_, err := r.Resolve(context.Background(), Param{Name: "API_KEY", Required: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequiredValueMissing)
	assert.Equal(t, "envsecret: secret API_KEY is required, but was not found", err.Error())

	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "API_KEY", pe.Name)
	assert.Equal(t, ErrCodeRequired, pe.Code)
}

func TestResolver_Resolve_FileIndirection(t *testing.T) {
	tests := []struct {
		name       string
		env        testEnv
		param      Param
		want       Optional[string]
		wantOrigin Origin
		wantReads  []string
		wantErr    error
	}{
		{
			name:       "path unset, not required",
			env:        testEnv{},
			param:      Param{Name: "TOKEN__FILE"},
			want:       None[string](),
			wantOrigin: OriginNone,
		},
		{
			name:    "path unset, required",
			env:     testEnv{},
			param:   Param{Name: "TOKEN__FILE", Required: true},
			wantErr: ErrRequiredValueMissing,
		},
		{
			name:       "path unset, default applies",
			env:        testEnv{},
			param:      Param{Name: "TOKEN__FILE", Default: Some("fallback")},
			want:       Some("fallback"),
			wantOrigin: OriginDefault,
		},
		{
			name:    "path unset, required check runs before default",
			env:     testEnv{},
			param:   Param{Name: "TOKEN__FILE", Required: true, Default: Some("fallback")},
			wantErr: ErrRequiredValueMissing,
		},
		{
			name:       "empty path counts as unset",
			env:        testEnv{"TOKEN__FILE": ""},
			param:      Param{Name: "TOKEN__FILE"},
			want:       None[string](),
			wantOrigin: OriginNone,
		},
		{
			name:       "path set",
			env:        testEnv{"TOKEN__FILE": "/run/secrets/token"},
			param:      Param{Name: "TOKEN__FILE", Required: true},
			want:       Some("s3cr3t\n"),
			wantOrigin: OriginFile,
			wantReads:  []string{"/run/secrets/token"},
		},
		{
			name:       "empty file is a value",
			env:        testEnv{"TOKEN__FILE": "/run/secrets/empty"},
			param:      Param{Name: "TOKEN__FILE", Default: Some("fallback")},
			want:       Some(""),
			wantOrigin: OriginFile,
			wantReads:  []string{"/run/secrets/empty"},
		},
		{
			name:       "file dir is informational",
			env:        testEnv{"TOKEN__FILE": "/run/secrets/token"},
			param:      Param{Name: "TOKEN__FILE", FileDir: "/elsewhere"},
			want:       Some("s3cr3t\n"),
			wantOrigin: OriginFile,
			wantReads:  []string{"/run/secrets/token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &recordingFiles{files: map[string]string{
				"/run/secrets/token": "s3cr3t\n",
				"/run/secrets/empty": "",
			}}
			r := NewResolver(WithEnv(tt.env), WithFileReader(files))

			res, err := r.Lookup(context.Background(), tt.param)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.param.Name)
				assert.Empty(t, files.reads, "filesystem must not be touched")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, tt.wantOrigin, res.Origin)
			assert.Equal(t, tt.wantReads, files.reads)
		})
	}
}

func TestResolver_Resolve_FileErrorPropagates(t *testing.T) {
	files := &recordingFiles{}
	r := NewResolver(WithEnv(testEnv{"TOKEN__FILE": "/missing"}), WithFileReader(files))

	_, err := r.Resolve(context.Background(), Param{Name: "TOKEN__FILE", Default: Some("fallback")})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var pe *ParamError
	assert.False(t, errors.As(err, &pe), "filesystem errors must not be wrapped")
}

func TestResolver_Resolve_RealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))
	t.Setenv("GREETING__FILE", path)

	r := NewResolver()
	res, err := r.Lookup(context.Background(), Param{Name: "GREETING__FILE"})
	require.NoError(t, err)
	assert.Equal(t, Some("hello"), res.Value)
	assert.Equal(t, OriginFile, res.Origin)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, "file:"+path, res.Source())
}

func TestResolver_Resolve_RealFileMissing(t *testing.T) {
	t.Setenv("GREETING__FILE", filepath.Join(t.TempDir(), "nope"))

	_, err := NewResolver().Resolve(context.Background(), Param{Name: "GREETING__FILE"})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestResolver_Resolve_ReadsEnvironmentEveryCall(t *testing.T) {
	t.Setenv("ENVSECRET_TEST_LIVE", "one")
	r := NewResolver()
	p := Param{Name: "ENVSECRET_TEST_LIVE"}

	got, err := r.Resolve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "one", got.Value)

	t.Setenv("ENVSECRET_TEST_LIVE", "two")
	got, err = r.Resolve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "two", got.Value)
}

func TestResolver_Resolve_InvalidParam(t *testing.T) {
	tests := []struct {
		name  string
		param Param
	}{
		{"empty name", Param{}},
		{"name with equals", Param{Name: "A=B"}},
		{"name with NUL", Param{Name: "A\x00B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(WithEnv(testEnv{}))
			_, err := r.Resolve(context.Background(), tt.param)
			assert.ErrorIs(t, err, ErrInvalidParam)
		})
	}
}

func TestResolver_Resolve_CanceledBeforeFileRead(t *testing.T) {
	files := &recordingFiles{files: map[string]string{"/run/secrets/token": "x"}}
	r := NewResolver(WithEnv(testEnv{"TOKEN__FILE": "/run/secrets/token"}), WithFileReader(files))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, Param{Name: "TOKEN__FILE"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, files.reads)
}

func TestResolver_NilOptionsKeepDefaults(t *testing.T) {
	t.Setenv("ENVSECRET_TEST_NIL", "v")
	r := NewResolver(WithEnv(nil), WithFileReader(nil), WithLogger(nil))

	got, err := r.Resolve(context.Background(), Param{Name: "ENVSECRET_TEST_NIL"})
	require.NoError(t, err)
	assert.Equal(t, Some("v"), got)
}

func TestResolver_LogsNamesNotValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	files := &recordingFiles{files: map[string]string{"/run/secrets/token": "topsecretvalue"}}
	r := NewResolver(
		WithEnv(testEnv{"TOKEN__FILE": "/run/secrets/token", "PLAIN": "plainvalue"}),
		WithFileReader(files),
		WithLogger(logger),
	)

	_, err := r.Resolve(context.Background(), Param{Name: "TOKEN__FILE", Secret: true})
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), Param{Name: "PLAIN"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TOKEN__FILE")
	assert.Contains(t, out, `"origin":"file"`)
	assert.NotContains(t, out, "topsecretvalue")
	assert.NotContains(t, out, "plainvalue")
}
