package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ToString converts various types to string. A nil value is the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// StringField reads key from a document map as a string.
func StringField(m map[string]any, key string) string {
	return ToString(m[key])
}

// ToTime converts document timestamps to time.Time.
// It handles time.Time, RFC 3339 strings and epoch milliseconds (int64 or float64).
// Anything else is the zero time.
func ToTime(val any) time.Time {
	switch v := val.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err == nil {
			return parsed
		}
	case int64:
		return time.UnixMilli(v).UTC()
	case int:
		return time.UnixMilli(int64(v)).UTC()
	case float64:
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Time{}
}
