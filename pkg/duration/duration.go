package duration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadType   = errors.New("duration: value must be a string or a number")
	ErrBadFormat = errors.New("duration: unparseable value")
)

// Parse нормализует пользовательское значение интервала в time.Duration.
// Числа трактуются как миллисекунды; строки — число с опциональным
// суффиксом: "" (мс), "ms", "s", "min", "h".
func Parse(v any) (time.Duration, error) {
	switch x := v.(type) {
	case string:
		return parseString(x)
	case int:
		return time.Duration(x) * time.Millisecond, nil
	case int64:
		return time.Duration(x) * time.Millisecond, nil
	case float64: // JSON-числа приходят как float64
		return time.Duration(x * float64(time.Millisecond)), nil
	default:
		return 0, fmt.Errorf("%w, got %T", ErrBadType, v)
	}
}

func parseString(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
	var unit time.Duration
	switch strings.ToLower(strings.TrimSpace(s[i:])) {
	case "", "ms":
		unit = time.Millisecond
	case "s":
		unit = time.Second
	case "min":
		unit = time.Minute
	case "h":
		unit = time.Hour
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
	return time.Duration(n * float64(unit)), nil
}
