// Config is only read from the environment (optionally seeded from a .env file by the caller).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	KEY_MARKERS_URL = "EMC_MARKERS_URL"
	KEY_PLAYERS_URL = "EMC_PLAYERS_URL"
	KEY_MAP_URL     = "EMC_MAP_URL"
	KEY_MARKERSET   = "EMC_MARKERSET"
	KEY_IGNORE_CASE = "EMC_IGNORE_CASE"
	KEY_REQ_PER_MIN = "EMC_REQ_PER_MIN"
	KEY_TIMEOUT     = "EMC_TIMEOUT"
	KEY_DB_DIR      = "EMC_DB_DIR"
	KEY_LOG_LEVEL   = "EMC_LOG_LEVEL"
)

func GetEnviroVar(name string) (string, error) {
	v, found := os.LookupEnv(name)
	if !found {
		return "", fmt.Errorf("environment variable %q must be specified", name)
	}
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("environment variable %q must not be empty", name)
	}

	return v, nil
}

// Reads and parses the variable, falling back when it is unset or empty.
// A variable that is set but fails to parse is still an error so typos don't go unnoticed.
func EnviroVarOr[T any](name string, fallback T) (T, error) {
	v, err := GetEnviroVar(name)
	if err != nil {
		return fallback, nil
	}

	parsed, err := ParseEnviroVar[T](v)
	if err != nil {
		return fallback, fmt.Errorf("environment variable %q: %w", name, err)
	}

	return parsed, nil
}

// Parses an EnviroVar to the desired type
func ParseEnviroVar[T any](v string) (T, error) {
	var zero T

	switch any(zero).(type) {
	case string:
		return any(v).(T), nil
	case bool:
		val, err := strconv.ParseBool(v)
		if err != nil {
			return zero, fmt.Errorf("failed to parse %q as bool: %v", v, err)
		}

		return any(val).(T), nil
	case int:
		val, err := strconv.Atoi(v)
		if err != nil {
			return zero, fmt.Errorf("failed to parse %q as int: %v", v, err)
		}

		return any(val).(T), nil
	case time.Duration:
		val, err := time.ParseDuration(v)
		if err != nil {
			return zero, fmt.Errorf("failed to parse %q as duration: %v", v, err)
		}

		return any(val).(T), nil
	}

	return zero, fmt.Errorf("unsupported environment variable type %T", zero)
}
