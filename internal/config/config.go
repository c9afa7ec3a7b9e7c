// Package config holds the CLI and server configuration. Every setting is a
// kingpin flag with a MARKTABLE_* environment fallback and a default, so
// the process runs without any configuration at all.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/units"
	"gopkg.in/alecthomas/kingpin.v2"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "MARKTABLE_"

// Config holds all application configuration.
type Config struct {
	Logging LoggingConfig
	Server  ServerConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string

	// Format is the log format: text or json (default: text)
	Format string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string

	// Port is the port to listen on (default: 8080)
	Port int

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration

	// MaxBodySize caps the size of a conversion request body (default: 4MB)
	MaxBodySize units.Base2Bytes
}

// flagger is implemented by kingpin.Application and kingpin.CmdClause.
type flagger interface {
	Flag(name, help string) *kingpin.FlagClause
}

func envar(name string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Register binds the logging settings to global flags on app.
func (c *LoggingConfig) Register(app flagger) {
	app.Flag("log-level", "Minimum log level (debug, info, warn, error).").
		Default("info").Envar(envar("log-level")).
		EnumVar(&c.Level, "debug", "info", "warn", "warning", "error")
	app.Flag("log-format", "Log format (text, json).").
		Default("text").Envar(envar("log-format")).
		EnumVar(&c.Format, "text", "json")
}

// Register binds the server settings to flags on cmd.
func (c *ServerConfig) Register(cmd flagger) {
	cmd.Flag("host", "Interface to bind to.").
		Default("127.0.0.1").Envar(envar("host")).StringVar(&c.Host)
	cmd.Flag("port", "Port to listen on.").
		Default("8080").Envar(envar("port")).IntVar(&c.Port)
	cmd.Flag("read-timeout", "Maximum duration for reading a request.").
		Default("15s").Envar(envar("read-timeout")).DurationVar(&c.ReadTimeout)
	cmd.Flag("write-timeout", "Maximum duration for writing a response.").
		Default("30s").Envar(envar("write-timeout")).DurationVar(&c.WriteTimeout)
	cmd.Flag("idle-timeout", "Keep-alive timeout.").
		Default("60s").Envar(envar("idle-timeout")).DurationVar(&c.IdleTimeout)
	cmd.Flag("shutdown-timeout", "Maximum duration for graceful shutdown.").
		Default("10s").Envar(envar("shutdown-timeout")).DurationVar(&c.ShutdownTimeout)
	cmd.Flag("max-body", "Maximum request body size (e.g. 512KiB, 4MiB).").
		Default("4MiB").Envar(envar("max-body")).BytesVar(&c.MaxBodySize)
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate reports every invalid server setting at once.
func (c *ServerConfig) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port (%d) must be 1-65535", c.Port))
	}
	if c.ReadTimeout < 0 {
		errs = append(errs, errors.New("read timeout must be non-negative"))
	}
	if c.WriteTimeout < 0 {
		errs = append(errs, errors.New("write timeout must be non-negative"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if c.MaxBodySize <= 0 {
		errs = append(errs, errors.New("max body size must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
