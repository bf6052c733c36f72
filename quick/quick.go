// Package quick provides a no-setup front door to duolog: a process-wide
// registry configured from "key=value" strings plus terse leveled helpers on
// its default singleton.
package quick

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/revenlok/duolog"
)

// config parses configuration strings into a duolog.Config layered over the
// defaults. Each argument must be in "key=value" format where key matches a
// Config field's toml tag.
func config(args ...string) (*duolog.Config, error) {
	cfg := duolog.DefaultConfig()
	for _, arg := range args {
		key, value, err := parseKeyValue(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid config format: %s", arg)
		}
		if err := setValue(cfg, key, value); err != nil {
			return nil, fmt.Errorf("config error: %s", err)
		}
	}
	return cfg, nil
}

// parseKeyValue splits a configuration string into key and value parts.
// Leading and trailing spaces are removed from both.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid format")
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// setValue updates a Config field using reflection. Field matching is
// case-insensitive against the lower-case toml tags. Values are converted to
// the field's type; the level field is validated against the enumeration.
func setValue(cfg *duolog.Config, key, value string) error {
	key = strings.ToLower(key)

	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if tag := field.Tag.Get("toml"); tag == key {
			f := v.Field(i)

			switch f.Kind() {
			case reflect.Bool:
				val, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("invalid bool value for %s: %s", key, value)
				}
				f.SetBool(val)

			case reflect.String:
				if key == "default_level" {
					if _, err := duolog.ParseLevel(value); err != nil {
						return err
					}
					f.SetString(strings.ToLower(value))
				} else {
					f.SetString(value)
				}

			default:
				return fmt.Errorf("unsupported config type for %s", key)
			}

			return nil
		}
	}
	return fmt.Errorf("unknown config key: %s", key)
}
