// Package config loads and validates zeekfmt settings from file, environment
// variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Defaults applied when neither config file nor environment set a value.
const (
	DefaultIndent          = "\t"
	DefaultSkipIdempotence = false
	DefaultTolerateErrors  = false
	DefaultMaxFileSize     = "16MiB"
)

var (
	// ErrBadIndent indicates an indent string containing something other
	// than spaces and tabs.
	ErrBadIndent = errors.New("indent must consist of spaces and tabs")

	// ErrBadMaxFileSize indicates an unparseable max_file_size value.
	ErrBadMaxFileSize = errors.New("invalid max_file_size")
)

// Config holds all zeekfmt settings.
type Config struct {
	Format FormatConfig `mapstructure:"format"`
}

// FormatConfig holds the formatting engine settings.
type FormatConfig struct {
	// Indent is the string written once per indentation level.
	Indent string `mapstructure:"indent"`

	// SkipIdempotence disables the second formatting pass that verifies
	// the output is a fixed point.
	SkipIdempotence bool `mapstructure:"skip_idempotence"`

	// TolerateErrors renders the text of unparseable regions verbatim
	// instead of failing.
	TolerateErrors bool `mapstructure:"tolerate_errors"`

	// MaxFileSize is the largest input accepted, in humanized notation
	// such as "16MiB".
	MaxFileSize string `mapstructure:"max_file_size"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if strings.Trim(c.Format.Indent, " \t") != "" {
		return fmt.Errorf("%w: %q", ErrBadIndent, c.Format.Indent)
	}

	_, err := humanize.ParseBytes(c.Format.MaxFileSize)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadMaxFileSize, c.Format.MaxFileSize)
	}

	return nil
}

// MaxFileSizeBytes returns the parsed max_file_size limit.
func (c *Config) MaxFileSizeBytes() uint64 {
	size, err := humanize.ParseBytes(c.Format.MaxFileSize)
	if err != nil {
		size, _ = humanize.ParseBytes(DefaultMaxFileSize)
	}

	return size
}
