package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// offTag is a struct tag key no config type uses. Pointing the env
// parser's TagName or DefaultValueTagName at it switches that half of
// the tag dialect off for one pass.
const offTag = "envOff"

// Load reads a YAML file into dst, then applies environment overrides.
// Precedence, lowest to highest: `envDefault` tag, file value,
// environment variable named by the `env` tag. Fields tagged
// `env:"NAME,required"` must have their variable set.
func Load(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return load(data, dst)
}

// LoadFS is Load reading from an fs.FS, typically an embed.FS.
func LoadFS(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", name, err)
	}
	return load(data, dst)
}

// FromEnv binds dst from environment variables and tag defaults alone,
// for deployments that carry no config file.
func FromEnv(dst any) error {
	return wrapEnvErr(env.Parse(dst))
}

// load layers the three sources in order. Tag defaults bind first with
// variable lookup switched off, the file overwrites them, then a final
// pass with defaults switched off lets real environment variables win
// and enforces required ones.
func load(data []byte, dst any) error {
	if err := env.ParseWithOptions(dst, env.Options{TagName: offTag}); err != nil {
		return wrapEnvErr(err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	return wrapEnvErr(env.ParseWithOptions(dst, env.Options{DefaultValueTagName: offTag}))
}

// wrapEnvErr maps the parser's failures onto this package's sentinels
// so callers keep matching with errors.Is.
func wrapEnvErr(err error) error {
	if err == nil {
		return nil
	}
	var agg env.AggregateError
	if errors.As(err, &agg) && len(agg.Errors) > 0 {
		err = agg.Errors[0]
	}
	var notSet env.VarIsNotSetError
	if errors.As(err, &notSet) {
		return fmt.Errorf("%w: %s", ErrMissingRequired, notSet.Key)
	}
	var notPtr env.NotStructPtrError
	if errors.As(err, &notPtr) {
		return ErrNotStructPointer
	}
	return fmt.Errorf("%w: %v", ErrInvalidValue, err)
}
