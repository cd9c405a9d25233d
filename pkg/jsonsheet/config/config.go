// Package config loads the optional jsonsheet configuration file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Error represents an unreadable or malformed configuration file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// File mirrors the on-disk configuration file. Pointer fields distinguish
// "not set" from a zero value so the CLI can override field-by-field.
type File struct {
	Out    string   `mapstructure:"out"`
	Sheet  string   `mapstructure:"sheet"`
	NDJSON bool     `mapstructure:"ndjson"`
	PK     []string `mapstructure:"pk"`

	// PKFirst is nil when the file leaves the default (true) in place.
	PKFirst *bool `mapstructure:"pk_first"`

	Include       []string `mapstructure:"include"`
	IncludeRegex  []string `mapstructure:"include_regex"`
	IncludeSubstr []string `mapstructure:"include_substr"`

	Order       []string `mapstructure:"order"`
	OrderRegex  []string `mapstructure:"order_regex"`
	OrderSubstr []string `mapstructure:"order_substr"`
	OrderRest   string   `mapstructure:"order_rest"`

	// Link maps exact column names to hyperlink base URLs.
	Link map[string]string `mapstructure:"link"`
}

// Load reads and decodes the configuration file at path. The format is
// inferred from the file extension (TOML, YAML, or JSON).
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return &f, nil
}
