package repository

// Result reports the outcome of a write operation. Repositories never return
// store errors to callers; writes yield a Result and reads degrade to empty
// values, with the underlying error logged.
type Result struct {
	IsSuccess bool   `json:"is_success"`
	Message   string `json:"message"`
}

func Success(message string) Result {
	return Result{IsSuccess: true, Message: message}
}

func Failure(message string) Result {
	return Result{IsSuccess: false, Message: message}
}
