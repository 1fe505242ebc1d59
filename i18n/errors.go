package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrPluralKeyUnresolvable = errors.New("plural key is not provided")
	ErrMissingArguments      = errors.New("translation requires arguments")
	ErrUnknownFormatter      = errors.New("formatter not found")
	ErrLocaleNotFound        = errors.New("locale not found")
)

// PluralKeyUnresolvableError is returned by Parse for a plural without a key
// and without a preceding number parameter or plural to borrow one from.
type PluralKeyUnresolvableError struct {
	Raw    string
	Offset int
}

func (e *PluralKeyUnresolvableError) Error() string {
	return fmt.Sprintf("parse %q at offset %d: %s", e.Raw, e.Offset, ErrPluralKeyUnresolvable)
}

func (e *PluralKeyUnresolvableError) Unwrap() error {
	return ErrPluralKeyUnresolvable
}

type MissingArgumentsError struct {
	Namespace string
	Key       string
}

func (e *MissingArgumentsError) Error() string {
	return fmt.Sprintf("translation %q in namespace %q: %s", e.Key, e.Namespace, ErrMissingArguments)
}

func (e *MissingArgumentsError) Unwrap() error {
	return ErrMissingArguments
}

type UnknownFormatterError struct {
	Name string
}

func (e *UnknownFormatterError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownFormatter, e.Name)
}

func (e *UnknownFormatterError) Unwrap() error {
	return ErrUnknownFormatter
}

// LocaleNotFoundError is returned when nothing was loaded yet or when no
// loaded locale holds the requested key.
type LocaleNotFoundError struct {
	Locale    string
	Namespace string
	Key       string
}

func (e *LocaleNotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %q (namespace %q)", ErrLocaleNotFound, e.Locale, e.Namespace)
	}
	return fmt.Sprintf("%s: %q has no translation %q in namespace %q", ErrLocaleNotFound, e.Locale, e.Key, e.Namespace)
}

func (e *LocaleNotFoundError) Unwrap() error {
	return ErrLocaleNotFound
}
