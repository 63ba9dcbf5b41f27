// Package options provides the generic functional option type shared by the
// encoder and the bundle writer.
package options

// Option configures a target of type T. Options run in the order they are
// passed and the first error stops the chain.
type Option[T any] func(T) error

// New creates an option from a setter that may fail.
func New[T any](fn func(T) error) Option[T] {
	return Option[T](fn)
}

// NoError creates an option from a setter that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply applies opts to target in order.
//
// Returns:
//   - error: the first error returned by an option; nil options are skipped
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
