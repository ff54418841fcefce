package helper

import (
	"errors"
	"fmt"
)

var (
	ErrNilValue       = errors.New("nil value")
	ErrUnexpectedType = errors.New("unexpected type")
)

// TypedValueOf asserts raw to T.
func TypedValueOf[T any](raw any) (T, bool) {
	val, ok := raw.(T)
	return val, ok
}

// GetTypedValueOf safely asserts the result of a getter function to the expected type T.
// Returns ErrNilValue when the getter yields nothing, and ErrUnexpectedType
// when the type assertion fails.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, fmt.Errorf("failed to get value: %w", err)
	}
	if res == nil {
		return zero, ErrNilValue
	}

	val, ok := TypedValueOf[T](res)
	if !ok {
		return zero, fmt.Errorf("%w: %T", ErrUnexpectedType, res)
	}

	return val, nil
}
