package timeline

import (
	"errors"
	"fmt"
)

// ErrConfig marks invalid static configuration. Callers match it with errors.Is.
var ErrConfig = errors.New("invalid configuration")

// ConfigError reports the configuration field that was rejected.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrConfig.Error(), e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfig.Error(), e.Field, e.Msg)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// ConfigErrorf builds a ConfigError for field.
func ConfigErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
