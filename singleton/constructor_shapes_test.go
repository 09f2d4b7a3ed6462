package singleton_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/gregmedd/debruce-api-demo-fork/singleton"
)

var _ = Describe("Constructor", func() {
	It("should accept a constructor returning only the instance", func() {
		_, err := singleton.New[*Conn](func(addr string) *Conn { return &Conn{addr: addr} })
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should accept a constructor with error", func() {
		_, err := singleton.New[*Conn](func(addr string) (*Conn, error) { return &Conn{addr: addr}, nil })
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should accept a constructor with cleanup function", func() {
		_, err := singleton.New[*Conn](
			func(addr string) (*Conn, singleton.Cleanup, error) {
				return &Conn{addr: addr}, func() {}, nil
			},
		)
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should accept a plain func() cleanup return", func() {
		_, err := singleton.New[*Conn](
			func(addr string) (*Conn, func(), error) {
				return &Conn{addr: addr}, func() {}, nil
			},
		)
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should refuse a non-function constructor", func() {
		_, err := singleton.New[*Conn]("not a constructor")

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(singleton.BadConstructorError)))
		Expect(errors.Unwrap(err)).Should(MatchError(singleton.ErrConstructorNotAFunction))
	})

	It("should refuse register variadic constructors", func() {
		variadicConstructor := func(args ...any) (*Conn, error) {
			return &Conn{}, nil
		}
		_, err := singleton.New[*Conn](variadicConstructor)

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(singleton.BadConstructorError)))
		Expect(errors.Unwrap(err)).Should(MatchError(singleton.ErrVariadicConstructor))
	})

	It("should refuse a constructor dependant on context.Context", func() {
		_, err := singleton.New[*Conn](
			func(ctx context.Context, addr string) (*Conn, error) {
				return &Conn{addr: addr}, nil
			},
		)

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(singleton.BadConstructorError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(singleton.ConstructorTemplateError)))
	})

	It("should refuse a constructor returning only an error", func() {
		_, err := singleton.New[*Conn](func() error { return nil })

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(singleton.BadConstructorError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(singleton.ConstructorTemplateError)))
	})

	It("should refuse a constructor for another instance type", func() {
		_, err := singleton.New[*Conn](func(name string) *Session { return &Session{name: name} })

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(singleton.BadConstructorError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(singleton.InstanceTypeError)))
	})

	It("should refuse too many return values", func() {
		_, err := singleton.New[*Conn](
			func() (*Conn, singleton.Cleanup, error, error) { return nil, nil, nil, nil },
		)

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(singleton.BadConstructorError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(singleton.ConstructorTemplateError)))
	})

	It("should panic in MustNew for a bad constructor", func() {
		Expect(func() { singleton.MustNew[*Conn](42) }).To(Panic())
	})
})
