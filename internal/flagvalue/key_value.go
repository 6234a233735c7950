package flagvalue

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"braces.dev/errtrace"
)

// KeyValue is a flag that accepts values in the form "key=value".
type KeyValue struct {
	Key   string
	Value string
}

var _ flag.Getter = (*KeyValue)(nil)

// Get returns the pair.
func (kv *KeyValue) Get() any { return *kv }

// String returns the pair in "key=value" form.
func (kv KeyValue) String() string {
	return fmt.Sprintf("%s=%s", kv.Key, kv.Value)
}

// Set parses a "key=value" pair.
// Neither side may be empty.
func (kv *KeyValue) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return errtrace.Wrap(errors.New("expected form 'key=value'"))
	}

	kv.Key = key
	kv.Value = value
	return nil
}
