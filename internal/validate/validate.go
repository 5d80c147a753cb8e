// Package validate provides declarative form validation for the entities
// accepted over the API. Validators return either a normalized value or a
// map from field path to the first violated rule's message.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Errors maps a field path (e.g. "questions.2.questionText") to the message
// of the first rule that field violated.
type Errors map[string]string

// Error implements the error interface so an Errors value can flow through
// normal error returns.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Add records msg for field unless an earlier rule already failed there.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// StringRule normalizes a string value or rejects it with a message.
// An empty message means the rule passed and normalized should be kept.
type StringRule func(value string) (normalized string, msg string)

// Trim removes surrounding whitespace. It never fails.
func Trim() StringRule {
	return func(v string) (string, string) {
		return strings.TrimSpace(v), ""
	}
}

// NonEmpty rejects empty strings.
func NonEmpty(msg string) StringRule {
	return func(v string) (string, string) {
		if v == "" {
			return v, msg
		}
		return v, ""
	}
}

// MinLen rejects strings shorter than n runes.
func MinLen(n int, msg string) StringRule {
	return func(v string) (string, string) {
		if len([]rune(v)) < n {
			return v, msg
		}
		return v, ""
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email rejects values that do not look like an email address.
func Email(msg string) StringRule {
	return func(v string) (string, string) {
		if !emailPattern.MatchString(v) {
			return v, msg
		}
		return v, ""
	}
}

// String runs rules in order against value, recording the first failure
// under path. The normalized value is returned; on failure the input value
// is returned unchanged.
func String(errs Errors, path, value string, rules ...StringRule) string {
	v := value
	for _, rule := range rules {
		normalized, msg := rule(v)
		if msg != "" {
			errs.Add(path, msg)
			return value
		}
		v = normalized
	}
	return v
}

// Check records msg under path when ok is false. Used for enum membership
// and other boolean rules.
func Check(errs Errors, path string, ok bool, msg string) {
	if !ok {
		errs.Add(path, msg)
	}
}

// Count enforces min/max element counts on an array field. A max of 0 means
// unbounded.
func Count(errs Errors, path string, n, min, max int, tooFew, tooMany string) {
	if n < min {
		errs.Add(path, tooFew)
		return
	}
	if max > 0 && n > max {
		errs.Add(path, tooMany)
	}
}
