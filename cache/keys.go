package cache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Cache namespaces. Each groups the keys of one logical query family so a
// whole family can be evicted at once.
const (
	NamespaceProperties      = "properties"
	NamespaceProperty        = "property"
	NamespaceFavorites       = "favorites"
	NamespaceRecommendations = "recommendations"
	NamespaceUserEmail       = "user:email"
	NamespaceSession         = "session:user"
)

const (
	pairSeparator  = ";"
	valueSeparator = "="
)

// Key derives a deterministic cache key from a namespace and a parameter
// set. Parameter order never affects the result: names are sorted
// lexicographically before serialization. Nil values are omitted entirely,
// so {a:1} and {a:1, b:nil} derive the same key. Slice values keep their
// element order, which is caller-meaningful.
func Key(namespace string, params map[string]any) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if isNil(value) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(namespace)
	sb.WriteString(":")
	for i, name := range names {
		if i > 0 {
			sb.WriteString(pairSeparator)
		}
		sb.WriteString(name)
		sb.WriteString(valueSeparator)
		sb.WriteString(canonical(params[name]))
	}
	return sb.String()
}

// isNil treats both untyped nil and nil pointers of the supported kinds as
// absent, so they never show up in a key.
func isNil(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case *string:
		return val == nil
	case *bool:
		return val == nil
	case *int:
		return val == nil
	case *int64:
		return val == nil
	case *float64:
		return val == nil
	case []string:
		return val == nil
	default:
		return false
	}
}

// canonical renders a parameter value in a stable textual form. Supported
// value kinds are the primitives the filter structs produce; anything else
// falls back to fmt, which is still deterministic for the types used here.
func canonical(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		return strings.Join(val, ",")
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case *bool:
		if val == nil {
			return ""
		}
		return strconv.FormatBool(*val)
	case *int:
		if val == nil {
			return ""
		}
		return strconv.Itoa(*val)
	case *int64:
		if val == nil {
			return ""
		}
		return strconv.FormatInt(*val, 10)
	case *float64:
		if val == nil {
			return ""
		}
		return strconv.FormatFloat(*val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func PropertyKey(propID string) string {
	return NamespaceProperty + ":" + propID
}

func FavoritesKey(userID string) string {
	return NamespaceFavorites + ":" + userID
}

func RecommendationsKey(userID string) string {
	return NamespaceRecommendations + ":" + userID
}

func EmailKey(email string) string {
	return NamespaceUserEmail + ":" + email
}

func SessionKey(userID string) string {
	return NamespaceSession + ":" + userID
}
