package singleton

import (
	"context"
	"fmt"
	"reflect"
)

type constructorType int

const (
	onlyInstance constructorType = iota
	withError
	withErrorAndCleanup
)

var (
	errorInterface   = reflect.TypeOf((*error)(nil)).Elem()
	cleanupType      = reflect.TypeOf((*Cleanup)(nil)).Elem()
	contextInterface = reflect.TypeOf((*context.Context)(nil)).Elem()
)

// constructor is a reflect-validated payload constructor. Its shape is
// checked once, when the wrapper is created; per-call positional arguments
// are checked on every construction attempt.
type constructor[T any] struct {
	fn              reflect.Value
	fnType          reflect.Type
	constructorType constructorType
	typeName        string
}

func newConstructor[T any](fn any) (*constructor[T], error) {
	t := reflect.TypeOf(fn)
	target := reflect.TypeOf((*T)(nil)).Elem()

	constructorType, err := getConstructorType(t, target)
	if err != nil {
		return nil, err
	}

	return &constructor[T]{
		fn:              reflect.ValueOf(fn),
		fnType:          t,
		constructorType: constructorType,
		typeName:        target.String(),
	}, nil
}

func getConstructorType(t, target reflect.Type) (constructorType, error) {
	cType := onlyInstance

	if t == nil || t.Kind() != reflect.Func {
		return cType, newBadConstructorError(ErrConstructorNotAFunction, t)
	}

	if t.IsVariadic() {
		return cType, newBadConstructorError(ErrVariadicConstructor, t)
	}

	// Construction is a synchronous, in-thread operation: there is nothing
	// a context could cancel, so context-taking constructors are refused.
	for i := 0; i < t.NumIn(); i++ {
		if t.In(i).Implements(contextInterface) {
			return cType, newBadConstructorError(
				&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplates},
				t,
			)
		}
	}

	switch t.NumOut() {
	case 1:
		if out := t.Out(0); out.Implements(errorInterface) {
			return cType, newBadConstructorError(
				&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplates},
				t,
			)
		}
	case 2:
		cType = withError

		if errType := t.Out(1); !errType.Implements(errorInterface) {
			return cType, newBadConstructorError(
				&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplates},
				t,
			)
		}
	case 3:
		cType = withErrorAndCleanup

		if cleanup := t.Out(1); !cleanup.AssignableTo(cleanupType) {
			return cType, newBadConstructorError(
				&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplates},
				t,
			)
		}

		if errType := t.Out(2); !errType.Implements(errorInterface) {
			return cType, newBadConstructorError(
				&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplates},
				t,
			)
		}
	default:
		return cType, newBadConstructorError(
			&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplates},
			t,
		)
	}

	if out := t.Out(0); out != target {
		return cType, newBadConstructorError(&InstanceTypeError{Want: target, Got: out}, t)
	}

	return cType, nil
}

// call invokes the constructor with positional args. Panics are recovered
// into an error so the construction lock is released on every exit path.
func (c *constructor[T]) call(args []any) (value T, cleanup Cleanup, err error) {
	defer func() {
		if rp := recover(); rp != nil {
			err = newInstanceBuilderError(
				newConstructorError(fmt.Errorf("recovered from panic: %v", rp)),
				c.typeName,
			)
		}
	}()

	in, err := c.buildArguments(args)
	if err != nil {
		return value, nil, err
	}

	out := c.fn.Call(in)

	switch c.constructorType {
	case onlyInstance:
		return out[0].Interface().(T), nil, nil
	case withError:
		if err, ok := out[1].Interface().(error); ok && err != nil {
			return value, nil, newInstanceBuilderError(newConstructorError(err), c.typeName)
		}

		return out[0].Interface().(T), nil, nil
	case withErrorAndCleanup:
		if err, ok := out[2].Interface().(error); ok && err != nil {
			return value, nil, newInstanceBuilderError(newConstructorError(err), c.typeName)
		}

		cleanup, _ := out[1].Convert(cleanupType).Interface().(Cleanup)

		return out[0].Interface().(T), cleanup, nil
	default:
		return value, nil, newInstanceBuilderError(
			newBadConstructorError(
				&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplates},
				c.fnType,
			),
			c.typeName,
		)
	}
}

func (c *constructor[T]) buildArguments(args []any) ([]reflect.Value, error) {
	numIn := c.fnType.NumIn()
	if len(args) != numIn {
		return nil, newInstanceBuilderError(
			&ArgumentCountError{ConstructorType: c.fnType, Want: numIn, Got: len(args)},
			c.typeName,
		)
	}

	in := make([]reflect.Value, numIn)
	for i, arg := range args {
		want := c.fnType.In(i)

		if arg == nil {
			switch want.Kind() {
			case reflect.Chan, reflect.Func, reflect.Interface,
				reflect.Map, reflect.Pointer, reflect.Slice:
				in[i] = reflect.Zero(want)
				continue
			default:
				return nil, newInstanceBuilderError(
					&ArgumentError{ConstructorType: c.fnType, Position: i, Want: want},
					c.typeName,
				)
			}
		}

		got := reflect.TypeOf(arg)
		if !got.AssignableTo(want) {
			return nil, newInstanceBuilderError(
				&ArgumentError{ConstructorType: c.fnType, Position: i, Want: want, Got: got},
				c.typeName,
			)
		}

		in[i] = reflect.ValueOf(arg)
	}

	return in, nil
}
