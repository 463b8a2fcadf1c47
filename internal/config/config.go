// Package config provides functionality for managing configuration options
// for the server using command-line flags, an optional JSON file and
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Duration is a time.Duration that decodes from JSON strings such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts a Go duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		d.Duration = v
		return nil
	}

	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds: %w", err)
	}
	d.Duration = time.Duration(secs * float64(time.Second))
	return nil
}

// MarshalJSON encodes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Options holds the configuration values for the server.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"address"`

	// DataDir is the directory holding the collection files.
	DataDir string `json:"data_dir"`

	// JWTSecret signs and verifies access tokens. Required.
	JWTSecret string `json:"jwt_secret"`

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL Duration `json:"token_ttl"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level"`

	// CORSOrigin is the value of Access-Control-Allow-Origin.
	CORSOrigin string `json:"cors_allowed_origin"`

	// LoginRatePerMinute caps login attempts per client IP. Zero disables it.
	LoginRatePerMinute int `json:"login_rate_per_minute"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// Default returns the options used when nothing overrides them.
func Default() *Options {
	return &Options{
		Addr:               "0.0.0.0:7000",
		DataDir:            "./data",
		TokenTTL:           Duration{24 * time.Hour},
		LogLevel:           "info",
		CORSOrigin:         "*",
		LoginRatePerMinute: 30,
		Config:             "config.json",
	}
}

// bind registers every flag on fs using the current values of o as defaults.
func bind(fs *flag.FlagSet, o *Options) {
	fs.StringVar(&o.Addr, "a", o.Addr, "run on ip:port server")
	fs.StringVar(&o.DataDir, "data", o.DataDir, "directory with the collection files")
	fs.StringVar(&o.JWTSecret, "secret", o.JWTSecret, "secret used to sign access tokens")
	fs.DurationVar(&o.TokenTTL.Duration, "token-ttl", o.TokenTTL.Duration, "access token lifetime")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&o.CORSOrigin, "cors-origin", o.CORSOrigin, "allowed CORS origin")
	fs.IntVar(&o.LoginRatePerMinute, "login-rate", o.LoginRatePerMinute, "login attempts per minute per client, 0 disables")
	fs.StringVar(&o.TLSCert, "tls-cert", o.TLSCert, "TLS certificate file")
	fs.StringVar(&o.TLSKey, "tls-key", o.TLSKey, "TLS key file")
	fs.StringVar(&o.Config, "config", o.Config, "path to config file")
	fs.StringVar(&o.Config, "c", o.Config, "path to config file (shorthand)")
}

// ParseArgs builds Options from args (without the program name). Values are
// applied in order: defaults, config file, flags, environment variables.
// A missing config file is skipped.
func ParseArgs(args []string) (*Options, error) {
	opts := Default()
	fs := flag.NewFlagSet("mockapi", flag.ContinueOnError)
	bind(fs, opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}

	if opts.Config != "" {
		data, err := os.ReadFile(opts.Config)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error while reading config file: %w", err)
		default:
			fromFile := Default()
			if err := json.Unmarshal(data, fromFile); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
			// Re-apply flags on top of the file values.
			fs = flag.NewFlagSet("mockapi", flag.ContinueOnError)
			bind(fs, fromFile)
			if err := fs.Parse(args); err != nil {
				return nil, err
			}
			fromFile.Config = opts.Config
			opts = fromFile
		}
	}

	if err := applyEnv(opts); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func applyEnv(o *Options) error {
	strVars := map[string]*string{
		"SERVER_ADDRESS":      &o.Addr,
		"DATA_DIR":            &o.DataDir,
		"JWT_SECRET":          &o.JWTSecret,
		"LOG_LEVEL":           &o.LogLevel,
		"CORS_ALLOWED_ORIGIN": &o.CORSOrigin,
		"TLS_CERT":            &o.TLSCert,
		"TLS_KEY":             &o.TLSKey,
	}
	for name, dst := range strVars {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		o.TokenTTL.Duration = ttl
	}
	if v := os.Getenv("LOGIN_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LOGIN_RATE_PER_MINUTE %q: %w", v, err)
		}
		o.LoginRatePerMinute = n
	}
	return nil
}

func (o *Options) validate() error {
	if o.JWTSecret == "" {
		return errors.New("jwt secret is required (-secret or JWT_SECRET)")
	}
	if o.Addr == "" {
		return errors.New("listen address is empty")
	}
	if o.TokenTTL.Duration <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", o.TokenTTL)
	}
	if (o.TLSCert == "") != (o.TLSKey == "") {
		return errors.New("tls cert and key must be set together")
	}
	return nil
}

// TLSEnabled reports whether the server should listen with HTTPS.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// Parse reads the process arguments and environment. It exits the process
// on invalid configuration.
func Parse() *Options {
	opts, err := ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return opts
}
