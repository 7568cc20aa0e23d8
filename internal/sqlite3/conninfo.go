package sqlite3

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nsqlite/wsq/internal/wsq"
)

// Well-known ConnInfo keys. Keys specific to this binding carry the
// "sqlite." prefix.
const (
	KeyName        = "name"
	KeyFlags       = "sqlite.flags"
	KeyVFS         = "sqlite.vfs"
	KeyBusyTimeout = "sqlite.busy_timeout"
)

// DefaultFlags are used when ConnInfo has no flags entry.
const DefaultFlags = wsq.SQLITE_OPEN_READWRITE | wsq.SQLITE_OPEN_CREATE

// ConnInfo holds the parameters for Open. Unknown keys are ignored.
//
//	Key                  Type                          Default
//	name                 string                        (required)
//	sqlite.flags         wsq.OpenFlag, int or string   READWRITE|CREATE
//	sqlite.vfs           string                        engine default
//	sqlite.busy_timeout  time.Duration, int or string  no busy handler
//
// String values for flags accept decimal or 0x-prefixed numbers. String
// values for the busy timeout accept Go durations ("250ms") or plain
// milliseconds.
type ConnInfo map[string]any

// ParseConnInfo parses a string of the form
//
//	key=value;key=value;...;key=value
//
// into a ConnInfo with string values. The empty string yields an empty map.
// Pairs without exactly one "=" and duplicate keys are errors; parsing keeps
// going to fill the map as much as possible and all errors are joined.
func ParseConnInfo(str string) (ConnInfo, error) {
	info := ConnInfo{}
	if str == "" {
		return info, nil
	}

	var errs []error
	for _, pair := range strings.Split(str, ";") {
		pieces := strings.Split(pair, "=")
		if len(pieces) != 2 {
			errs = append(errs, fmt.Errorf("one '=' expected, got %q", pair))
			continue
		}

		key, value := strings.TrimSpace(pieces[0]), strings.TrimSpace(pieces[1])
		if _, duplicate := info[key]; duplicate {
			errs = append(errs, fmt.Errorf("duplicate key %q", key))
			continue
		}
		info[key] = value
	}

	return info, errors.Join(errs...)
}

func (info ConnInfo) name() (string, error) {
	value, ok := info[KeyName]
	if !ok {
		return "", ErrNoName
	}
	name, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("invalid %s: expected string, got %T", KeyName, value)
	}
	return name, nil
}

func (info ConnInfo) flags() (wsq.OpenFlag, error) {
	value, ok := info[KeyFlags]
	if !ok {
		return DefaultFlags, nil
	}

	switch v := value.(type) {
	case wsq.OpenFlag:
		return v, nil
	case int:
		return wsq.OpenFlag(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", KeyFlags, v, err)
		}
		return wsq.OpenFlag(n), nil
	}

	return 0, fmt.Errorf("invalid %s: unsupported type %T", KeyFlags, value)
}

func (info ConnInfo) vfs() (string, error) {
	value, ok := info[KeyVFS]
	if !ok || value == nil {
		return "", nil
	}
	vfs, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("invalid %s: expected string, got %T", KeyVFS, value)
	}
	return vfs, nil
}

// busyTimeout returns the configured timeout and whether one was set.
func (info ConnInfo) busyTimeout() (time.Duration, bool, error) {
	value, ok := info[KeyBusyTimeout]
	if !ok {
		return 0, false, nil
	}

	switch v := value.(type) {
	case time.Duration:
		return v, true, nil
	case int:
		return time.Duration(v) * time.Millisecond, true, nil
	case string:
		v = strings.TrimSpace(v)
		if d, err := time.ParseDuration(v); err == nil {
			return d, true, nil
		}
		ms, err := strconv.Atoi(v)
		if err != nil {
			return 0, false, fmt.Errorf("invalid %s %q: expected duration or milliseconds", KeyBusyTimeout, v)
		}
		return time.Duration(ms) * time.Millisecond, true, nil
	}

	return 0, false, fmt.Errorf("invalid %s: unsupported type %T", KeyBusyTimeout, value)
}
