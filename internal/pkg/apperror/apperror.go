package apperror

// AppError is a custom error type that carries an HTTP status code and an
// error category exposed to clients alongside the message.
type AppError struct {
	Code     int    // HTTP Status Code (e.g., 400, 404)
	Category string // Machine-readable error category (e.g., "not_found")
	Message  string // User-facing error message
	Err      error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code, category and message.
func New(code int, category, message string) *AppError {
	return &AppError{
		Code:     code,
		Category: category,
		Message:  message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, category, message string) *AppError {
	return &AppError{
		Code:     code,
		Category: category,
		Message:  message,
		Err:      err,
	}
}
