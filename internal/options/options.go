// Package options implements the functional option pattern shared by codec constructors.
package options

// Option configures a target of type T, typically a pointer to a config struct.
type Option[T any] func(T) error

// Apply applies opts to target in order and stops at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}

// New wraps a setter that validates its input.
func New[T any](fn func(T) error) Option[T] {
	return fn
}
