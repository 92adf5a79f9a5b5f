package settings

import (
	"fmt"
	"strings"

	"github.com/lokitools/schema/errors"
)

// Validate checks if the settings are valid.
func (s *Settings) Validate() error {
	if s.Resolver != nil {
		if err := validateResolver(s.Resolver); err != nil {
			return errors.Wrap(err, errors.ErrCodeSettingsInvalid, "invalid resolver settings")
		}
	}

	if s.Hooks != nil {
		if strings.TrimSpace(s.Hooks.Config) != s.Hooks.Config {
			return errors.New(errors.ErrCodeSettingsInvalid, "hooks.config must not have surrounding whitespace").
				WithDetail("config", s.Hooks.Config)
		}
	}

	return nil
}

func validateResolver(r *ResolverSettings) error {
	if r.WatchDebounceMs < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("watch_debounce_ms must not be negative, got %d", r.WatchDebounceMs)).
			WithDetail("watch_debounce_ms", r.WatchDebounceMs)
	}

	for _, key := range r.KeepKeys {
		if strings.TrimSpace(key) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "keep_keys must not contain empty entries")
		}
	}

	for _, field := range r.Preserve {
		if strings.TrimSpace(field) == "" {
			return errors.New(errors.ErrCodeInvalidInput, "preserve must not contain empty entries")
		}
	}

	return nil
}
