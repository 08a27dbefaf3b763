// Package config binds YAML files and environment variables into structs.
//
// The environment layer is caarlos0/env, so fields declare their binding
// with the same tags used across this repository's configuration structs:
//
//	type Config struct {
//		Address     string        `yaml:"address" env:"APP_ADDRESS" envDefault:":8080"`
//		Environment string        `yaml:"environment" env:"APP_ENV" envDefault:"development"`
//		Secret      string        `yaml:"secret" env:"APP_SECRET,required"`
//		Timeout     time.Duration `yaml:"timeout" env:"APP_TIMEOUT" envDefault:"30s"`
//		Hosts       []string      `yaml:"hosts" env:"APP_HOSTS" envSeparator:","`
//	}
//
// Load applies three layers, lowest precedence first: `envDefault` tag
// values, the YAML file, then environment variables. A field tagged
// `,required` must have its environment variable set, regardless of what
// the file provides:
//
//	var cfg Config
//	if err := config.Load("config.yaml", &cfg); err != nil {
//		log.Fatal(err)
//	}
//
// FromEnv skips the file layer for deployments configured purely through
// the environment, and LoadFS reads the file from an fs.FS (typically an
// embed.FS).
//
// Field types, separators, and nested struct traversal follow caarlos0/env;
// parse failures and missing required variables surface as this package's
// sentinel errors.
package config
