// Package validate provides small per-field validator functions. Each Rule
// inspects one raw form value and returns an error message, or "" when the value
// is acceptable. Results are collected into an Errors map keyed by field name.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired = "This field is required."
	MsgEmail    = "Invalid email address."
	MsgMismatch = "Passwords must match."
	MsgDate     = "Not a valid date value."
	MsgChoice   = "Not a valid choice."

	msgTooLong = "Field cannot be longer than %d characters."
)

var engine = validator.New()

// Rule checks a single value.
type Rule func(value string) string

// Errors maps field name to the first failing rule's message.
type Errors map[string]string

// Field runs rules against value in order and records the first failure under name.
// Later rules are skipped once one fails, so "required" masks format errors.
func (e Errors) Field(name, value string, rules ...Rule) {
	if _, seen := e[name]; seen {
		return
	}
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			e[name] = msg
			return
		}
	}
}

// Required rejects empty and whitespace-only values.
func Required(value string) string {
	if engine.Var(strings.TrimSpace(value), "required") != nil {
		return MsgRequired
	}
	return ""
}

// Email accepts a basic user@host form.
func Email(value string) string {
	if engine.Var(value, "email") != nil {
		return MsgEmail
	}
	return ""
}

// EqualTo requires value to match other exactly.
func EqualTo(other string) Rule {
	return func(value string) string {
		if value != other {
			return MsgMismatch
		}
		return ""
	}
}

// MaxLen rejects values longer than n bytes.
func MaxLen(n int) Rule {
	return func(value string) string {
		if len(value) > n {
			return fmt.Sprintf(msgTooLong, n)
		}
		return ""
	}
}

// Date requires value to parse with layout.
func Date(layout string) Rule {
	return func(value string) string {
		if _, err := time.Parse(layout, strings.TrimSpace(value)); err != nil {
			return MsgDate
		}
		return ""
	}
}

// IntBetween requires an integer within [lo, hi].
func IntBetween(lo, hi int) Rule {
	return func(value string) string {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < lo || n > hi {
			return MsgChoice
		}
		return ""
	}
}

// OneOf requires value to equal one of choices.
func OneOf(choices ...string) Rule {
	return func(value string) string {
		v := strings.TrimSpace(value)
		for _, c := range choices {
			if v == c {
				return ""
			}
		}
		return MsgChoice
	}
}
