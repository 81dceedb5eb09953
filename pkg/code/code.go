// Package code defines coded business errors shared by both storage backends.
package code

import (
	"errors"
	"fmt"
)

// Code is a business error with a stable numeric code.
// Codes are registered once at init time; reusing a code panics.
type Code struct {
	code    int
	msg     string
	details []string
}

var codes = map[int]string{}

func NewError(c int, msg string) *Code {
	if _, ok := codes[c]; ok {
		panic(fmt.Sprintf("error code %d already exists, pick another one", c))
	}
	codes[c] = msg
	return &Code{code: c, msg: msg}
}

func (e *Code) Error() string {
	return e.msg
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Msg() string {
	return e.msg
}

func (e *Code) Details() []string {
	return e.details
}

// WithDetails returns a copy carrying extra detail strings.
// The registered base value is never mutated.
func (e *Code) WithDetails(details ...string) *Code {
	clone := &Code{code: e.code, msg: e.msg}
	clone.details = append(clone.details, details...)
	return clone
}

// Is matches by numeric code so WithDetails copies still compare
// equal to the registered base value under errors.Is.
func (e *Code) Is(target error) bool {
	var t *Code
	if !errors.As(target, &t) {
		return false
	}
	return e.code == t.code
}
