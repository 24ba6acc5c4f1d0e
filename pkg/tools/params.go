package tools

import (
	"fmt"
	"strings"

	"github.com/vcsbridge/vcs-mcp-server/pkg/provider"
)

// RequiredParam is a helper function that can be used to fetch a required
// parameter from the arguments map. It does the following checks:
//
//  1. Checks if the parameter is present in the request.
//  2. Checks if the parameter is of the expected type.
//  3. Checks if the parameter is not empty, i.e: non-zero value.
func RequiredParam[T comparable](args map[string]any, p string) (T, error) {
	var zero T

	if _, ok := args[p]; !ok {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	value, ok := args[p].(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, args[p])
	}

	if value == zero {
		return zero, fmt.Errorf("missing required parameter: %s", p)
	}

	return value, nil
}

// OptionalParam is a helper function that can be used to fetch an optional
// parameter from the arguments map. If the parameter is absent the zero value
// is returned without error; a present value of the wrong type is an error.
func OptionalParam[T any](args map[string]any, p string) (T, error) {
	var zero T

	if _, ok := args[p]; !ok {
		return zero, nil
	}

	value, ok := args[p].(T)
	if !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, args[p])
	}

	return value, nil
}

// OptionalIntParam fetches an optional integer. JSON numbers decode as
// float64, so the value is fetched as float64 and converted.
func OptionalIntParam(args map[string]any, p string) (int, error) {
	v, err := OptionalParam[float64](args, p)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// OptionalIntParamWithDefault fetches an optional integer, returning the
// provided default when the parameter is absent or zero.
func OptionalIntParamWithDefault(args map[string]any, p string, d int) (int, error) {
	v, err := OptionalIntParam(args, p)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return d, nil
	}
	return v, nil
}

// RequiredInt fetches a required integer parameter.
func RequiredInt(args map[string]any, p string) (int, error) {
	v, err := RequiredParam[float64](args, p)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// OptionalStringArrayParam fetches an optional string array. Both []string
// and []any of strings are accepted since JSON decoding yields the latter.
func OptionalStringArrayParam(args map[string]any, p string) ([]string, error) {
	if _, ok := args[p]; !ok {
		return []string{}, nil
	}

	switch v := args[p].(type) {
	case nil:
		return []string{}, nil
	case []string:
		return v, nil
	case []any:
		strSlice := make([]string, len(v))
		for i, val := range v {
			s, ok := val.(string)
			if !ok {
				return []string{}, fmt.Errorf("parameter %s is not of type string, is %T", p, val)
			}
			strSlice[i] = s
		}
		return strSlice, nil
	default:
		return []string{}, fmt.Errorf("parameter %s could not be coerced to []string, is %T", p, args[p])
	}
}

// OptionalBoolPtr fetches an optional boolean and returns a pointer, or nil
// when the parameter is absent. Used where APIs distinguish false from unset.
func OptionalBoolPtr(args map[string]any, p string) (*bool, error) {
	if _, ok := args[p]; !ok {
		return nil, nil
	}
	v, err := OptionalParam[bool](args, p)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// OptionalPaginationParams returns the "page" and "per-page" parameters,
// applying the conventional defaults of page 1 and 30 results per page.
func OptionalPaginationParams(args map[string]any) (provider.ListOptions, error) {
	page, err := OptionalIntParamWithDefault(args, "page", 1)
	if err != nil {
		return provider.ListOptions{}, err
	}
	perPage, err := OptionalIntParamWithDefault(args, "per_page", 30)
	if err != nil {
		return provider.ListOptions{}, err
	}
	return provider.ListOptions{Page: page, PerPage: perPage}, nil
}

// missingParams returns the subset of names absent or empty in args,
// preserving order.
func missingParams(args map[string]any, names []string) []string {
	var missing []string
	for _, name := range names {
		v, ok := args[name]
		if !ok || v == nil {
			missing = append(missing, name)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
