package filters

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/justsurfingit/jobly/internal/apperrors"
)

// Validate extracts the keys of spec from raw and returns them typed.
//
// Checks run in a fixed order and the first violation is returned: range
// consistency, then numeric parsing, then string shape, then boolean literals.
// Keys not in spec are ignored.
func Validate(raw url.Values, spec Spec) (Set, error) {
	present := make(map[string][]string, len(spec))
	for _, k := range spec {
		if vs, ok := raw[k.Name]; ok {
			present[k.Name] = vs
		}
	}

	for _, k := range spec {
		if k.Kind != Min || k.Pair == "" {
			continue
		}
		lo, okLo := singleNumber(present[k.Name])
		hi, okHi := singleNumber(present[k.Pair])
		if okLo && okHi && lo > hi {
			return nil, &apperrors.InvalidRangeError{Min: k.Name, Max: k.Pair}
		}
	}

	out := make(Set, len(present))
	for _, k := range spec {
		vs, ok := present[k.Name]
		if !ok || !k.Kind.Numeric() {
			continue
		}
		n, ok := singleNumber(vs)
		if !ok {
			return nil, &apperrors.InvalidNumericValueError{Key: k.Name, Value: strings.Join(vs, ",")}
		}
		out[k.Name] = n
	}

	for _, k := range spec {
		vs, ok := present[k.Name]
		if !ok || k.Kind != Substring {
			continue
		}
		if len(vs) != 1 {
			return nil, &apperrors.InvalidTypeError{Key: k.Name}
		}
		out[k.Name] = vs[0]
	}

	for _, k := range spec {
		vs, ok := present[k.Name]
		if !ok || k.Kind != Flag {
			continue
		}
		b, ok := singleBool(vs)
		if !ok {
			return nil, &apperrors.InvalidBooleanError{Key: k.Name, Value: strings.Join(vs, ",")}
		}
		out[k.Name] = b
	}

	return out, nil
}

// singleNumber parses a lone finite number. Surrounding spaces are allowed.
func singleNumber(vs []string) (float64, bool) {
	if len(vs) != 1 {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(vs[0]), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func singleBool(vs []string) (bool, bool) {
	if len(vs) != 1 {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(vs[0])) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// Recognized reports whether raw carries any key of spec. Listing endpoints
// use it to choose between a plain listing and a filtered search.
func Recognized(raw url.Values, spec Spec) bool {
	for _, k := range spec {
		if _, ok := raw[k.Name]; ok {
			return true
		}
	}
	return false
}
