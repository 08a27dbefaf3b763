package aria

import (
	"time"
)

// Config is the file/environment shape consumed by FromConfig. Load it
// with pkg/config:
//
//	var cfg aria.Config
//	if err := config.Load("app.yaml", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	app := aria.New(aria.FromConfig(cfg)...)
//	err := app.Run(cfg.Address, aria.RunFromConfig(cfg)...)
type Config struct {
	// Environment selects environment-specific behavior: "development",
	// "staging", or "production".
	Environment string `yaml:"environment" env:"APP_ENV" envDefault:"development"`

	// Address is the HTTP listen address.
	Address string `yaml:"address" env:"APP_ADDR" envDefault:":8080"`

	// LogComponent names the application logger; empty disables logging.
	LogComponent string `yaml:"log_component" env:"LOG_COMPONENT"`

	// SessionSecret enables encrypted cookie sessions when set. At least
	// 32 bytes.
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET"`

	// SessionName overrides the session cookie name.
	SessionName string `yaml:"session_name" env:"SESSION_NAME"`

	// SessionTTL overrides how long the session cookie lives.
	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// RaiseErrors propagates dispatch failures instead of recovering
	// them. Development only.
	RaiseErrors bool `yaml:"raise_errors" env:"RAISE_ERRORS"`
}

// FromConfig maps a Config to application options. Zero-valued fields
// produce no option, so the result composes with explicit options:
//
//	app := aria.New(append(aria.FromConfig(cfg),
//	    aria.WithHandlers(handlers.NewPages(repo)),
//	)...)
func FromConfig(cfg Config) []Option {
	var opts []Option
	if cfg.Environment != "" {
		opts = append(opts, WithEnvironment(Environment(cfg.Environment)))
	}
	if cfg.LogComponent != "" {
		opts = append(opts, WithLogger(cfg.LogComponent))
	}
	if cfg.SessionSecret != "" {
		var sessOpts []SessionOption
		if cfg.SessionName != "" {
			sessOpts = append(sessOpts, WithSessionName(cfg.SessionName))
		}
		if cfg.SessionTTL > 0 {
			sessOpts = append(sessOpts, WithSessionTTL(cfg.SessionTTL))
		}
		opts = append(opts, WithSessions(cfg.SessionSecret, sessOpts...))
	}
	if cfg.RaiseErrors {
		opts = append(opts, WithRaiseErrors())
	}
	return opts
}

// RunFromConfig maps a Config to server runtime options.
func RunFromConfig(cfg Config) []RunOption {
	var opts []RunOption
	if cfg.Address != "" {
		opts = append(opts, Address(cfg.Address))
	}
	if cfg.ShutdownTimeout > 0 {
		opts = append(opts, ShutdownTimeout(cfg.ShutdownTimeout))
	}
	return opts
}
