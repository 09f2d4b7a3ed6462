package singleton

import (
	"fmt"
	"reflect"
)

const constructorTemplates string = "func(T1, ...) [T|(T, error)|(T, singleton.Cleanup, error)]"

var (
	ErrConstructorNotAFunction = fmt.Errorf("constructor must be a function")
	ErrVariadicConstructor     = fmt.Errorf("variadic constructor is not supported")
	// ErrInstanceRejected reports that a freshly constructed instance
	// failed its validity check and was discarded. Rejections carrying a
	// result value unwrap to this sentinel as well.
	ErrInstanceRejected = fmt.Errorf("instance failed its validity check")
	// ErrNoResultValue is returned by ResultValue when the given error is
	// not a rejection carrying a result value.
	ErrNoResultValue = fmt.Errorf("error carries no instance result value")
)

func newBadConstructorError(cause error, constructorType reflect.Type) error {
	return &BadConstructorError{
		cause:           cause,
		ConstructorType: constructorType,
	}
}

type BadConstructorError struct {
	cause           error
	ConstructorType reflect.Type
}

func (err *BadConstructorError) Error() string {
	return fmt.Sprintf("bad constructor %s: %s", err.ConstructorType, err.cause)
}

func (err *BadConstructorError) Unwrap() error {
	return err.cause
}

type ConstructorTemplateError struct {
	SupportedConstructorTemplates string
}

func (err *ConstructorTemplateError) Error() string {
	return fmt.Sprintf("only %s can be used", err.SupportedConstructorTemplates)
}

type InstanceTypeError struct {
	Want, Got reflect.Type
}

func (err *InstanceTypeError) Error() string {
	return fmt.Sprintf("constructor must return %s, returns %s", err.Want, err.Got)
}

func newInstanceBuilderError(cause error, typeName string) error {
	return &InstanceBuilderError{
		cause:    cause,
		TypeName: typeName,
	}
}

type InstanceBuilderError struct {
	cause    error
	TypeName string
}

func (err *InstanceBuilderError) Error() string {
	return fmt.Sprintf("cannot build instance of %s: %s", err.TypeName, err.cause)
}

func (err *InstanceBuilderError) Unwrap() error {
	return err.cause
}

func newConstructorError(cause error) error {
	return &ConstructorError{
		cause: cause,
	}
}

type ConstructorError struct {
	cause error
}

func (err *ConstructorError) Error() string {
	return fmt.Sprintf("constructor returned an error: %s", err.cause)
}

func (err *ConstructorError) Unwrap() error {
	return err.cause
}

type ArgumentCountError struct {
	ConstructorType reflect.Type
	Want, Got       int
}

func (err *ArgumentCountError) Error() string {
	return fmt.Sprintf("constructor %s takes %d arguments, got %d", err.ConstructorType, err.Want, err.Got)
}

// ArgumentError reports a positional argument that cannot be passed to the
// constructor. Got is nil when an untyped nil was given for a
// non-nilable parameter.
type ArgumentError struct {
	ConstructorType reflect.Type
	Want, Got       reflect.Type
	Position        int
}

func (err *ArgumentError) Error() string {
	if err.Got == nil {
		return fmt.Sprintf(
			"argument %d of constructor %s must be %s, got untyped nil",
			err.Position, err.ConstructorType, err.Want,
		)
	}

	return fmt.Sprintf(
		"argument %d of constructor %s must be %s, got %s",
		err.Position, err.ConstructorType, err.Want, err.Got,
	)
}

func newRejectedError(typeName string, value any) error {
	return &RejectedError{
		TypeName: typeName,
		Value:    value,
	}
}

// RejectedError is the outcome of a construction attempt whose payload
// reported itself invalid and supplied a result value. Value holds that
// value in type-erased form; recover it with ResultValue.
type RejectedError struct {
	Value    any
	TypeName string
}

func (err *RejectedError) Error() string {
	return fmt.Sprintf("instance of %s rejected: %v", err.TypeName, err.Value)
}

func (err *RejectedError) Unwrap() error {
	return ErrInstanceRejected
}

// ResultTypeError reports an attempt to extract a rejection's result value
// as the wrong concrete type.
type ResultTypeError struct {
	Want, Got reflect.Type
}

func (err *ResultTypeError) Error() string {
	return fmt.Sprintf("instance result value is %s, not %s", err.Got, err.Want)
}
