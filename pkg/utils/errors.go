package utils

// AppError is the error payload of the response envelope.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeInfeasible   = "INFEASIBLE_ROSTER"
	ErrCodeTimeout      = "OPTIMIZATION_TIMEOUT"
	ErrCodeOptimization = "OPTIMIZATION_ERROR"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

func NewAppError(code, message string, details ...string) *AppError {
	err := &AppError{Code: code, Message: message}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

func (e *AppError) Error() string {
	return e.Message
}
