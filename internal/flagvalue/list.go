package flagvalue

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
)

// List is a flag.Getter that collects every use of a repeated flag.
// A single use may also carry several comma-separated values,
// which is convenient in environment variables.
type List[T any, PT Getter[T]] []T

// ListOf adapts a slice to accept zero or more uses of a flag.
//
//	flag.Var(flagvalue.ListOf(&aliases), "alias", ...)
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the collected values as a []T.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String joins the values with commas.
// The result is accepted by Set.
func (lv *List[T, PT]) String() string {
	var sb strings.Builder
	for i, v := range *lv {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v)
	}
	return sb.String()
}

// Set parses one use of the flag.
// Nothing is recorded if any of its values is invalid.
func (lv *List[T, PT]) Set(s string) error {
	var items []T
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var v T
		if err := PT(&v).Set(part); err != nil {
			return errtrace.Wrap(err)
		}
		items = append(items, v)
	}
	*lv = append(*lv, items...)
	return nil
}
