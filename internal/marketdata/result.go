package marketdata

// Result is the envelope returned by every data access call.
// Exactly one of Value and Err is populated: Value when OK is true,
// Err when it is false. Callers never see a raw provider fault.
type Result[T any] struct {
	OK    bool   `json:"ok"`
	Value T      `json:"value,omitempty"`
	Err   *Error `json:"error,omitempty"`
}

// Ok wraps a successful value in a Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{OK: true, Value: value}
}

// Fail wraps an access-layer error in a Result.
func Fail[T any](err *Error) Result[T] {
	return Result[T]{Err: err}
}
