// Package changetrack implements the change-detection side of the engine:
// canonical hashing of sequences and settings, cycle snapshots, and the
// classification of what an update cycle must recompute and re-render. It
// performs no recomputation itself.
package changetrack

import (
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/spcflow/spcflow/internal/utils"
)

// Canonicalization: a deterministic string form per element so that
// semantically equal values always hash identically. Floats are fixed to six
// decimal places, so values differing by less than 1e-6 collapse to
// "unchanged". That is a deliberate sensitivity/performance trade-off.

const hashSeparator = "\x1f"

// CanonicalFloat returns the canonical string form of one float, with
// explicit sentinel tokens for the non-finite cases.
func CanonicalFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// CanonicalValue returns the canonical string form of an arbitrary settings
// value: numbers via CanonicalFloat, recursive forms for slices and maps
// (map keys sorted), and sentinel "null" for nil.
func CanonicalValue(v interface{}) string {
	if v == nil {
		return "null"
	}
	if f, ok := utils.ToFloat64(v); ok {
		return CanonicalFloat(f)
	}

	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = CanonicalValue(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case []float64:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = CanonicalFloat(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+":"+CanonicalValue(val[k]))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// HashStrings folds an ordered string sequence into a 32-bit FNV-1a hash.
// Equal inputs hash identically; unequal inputs differ with high probability.
// A hash, not a cryptographic digest.
func HashStrings(values []string) uint32 {
	h := fnv.New32a()
	for _, v := range values {
		h.Write([]byte(v))
		h.Write([]byte(hashSeparator))
	}
	return h.Sum32()
}

// HashFloats hashes a float series in canonical form.
func HashFloats(values []float64) uint32 {
	canonical := make([]string, len(values))
	for i, v := range values {
		canonical[i] = CanonicalFloat(v)
	}
	return HashStrings(canonical)
}

// HashInts hashes an int series.
func HashInts(values []int) uint32 {
	canonical := make([]string, len(values))
	for i, v := range values {
		canonical[i] = strconv.Itoa(v)
	}
	return HashStrings(canonical)
}

// HashSettingsCategory hashes one settings category: own keys sorted, every
// value serialized deterministically, function-valued entries skipped.
func HashSettingsCategory(category map[string]interface{}) uint32 {
	keys := make([]string, 0, len(category))
	for k := range category {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		v := category[k]
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
			continue
		}
		entries = append(entries, k+":"+CanonicalValue(v))
	}
	return HashStrings(entries)
}
