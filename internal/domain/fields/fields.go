package fields

import (
	"fmt"
	"strconv"
	"strings"
)

// Runtime is the provider's runtime text, e.g. "148 min".
type Runtime string

func (r Runtime) Minutes() (int, bool) {
	s := strings.TrimSpace(string(r))
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	m, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return m, true
}

// String renders the runtime as "2h 28m". Unparseable values are returned as is.
func (r Runtime) String() string {
	m, ok := r.Minutes()
	if !ok {
		return string(r)
	}
	if h := m / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, m%60)
	}
	return fmt.Sprintf("%dm", m)
}

func (r Runtime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}

// Rating is the provider's rating text, e.g. "8.8".
type Rating string

// String renders the rating with one decimal. Unparseable values are returned as is.
func (r Rating) String() string {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(r)), 64)
	if err != nil {
		return string(r)
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}
