// Package parameters handles generic configuration Params, a map[string]string that the
// user can set with a configuration string like "alphabeta,depth=3,eval=better".
package parameters

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Params represent generic configuration parameters.
type Params map[string]string

// Value is the set of types a parameter can be parsed to.
type Value interface {
	bool | int | float64 | string
}

// NewFromConfigString create params from user's configuration string.
// Parts are separated by ",", and each part is either a "key" or a "key=value" pair.
// Empty parts and surrounding spaces are ignored.
//
// See GetParamOr and PopParamOr to parse values from this map.
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=") // Only the first "=" splits, values may contain "=".
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.Atoi(value)
	case float64:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.ParseFloat(value, 64)
	case bool:
		parsed, err = parseBool(value)
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to %T", key, value, defaultValue)
	}
	return parsed.(T), nil
}

// parseBool accepts an empty value as true.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "", "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, errors.Errorf("invalid bool value %q", value)
}

// Has returns whether the key is set, with or without value.
func (p Params) Has(key string) bool {
	_, found := p[key]
	return found
}

// Keys returns the sorted keys still present in params. Typically used after all known
// parameters were popped, to report the unknown ones.
func (p Params) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}
