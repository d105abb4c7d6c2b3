package domain

type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultFailure ResultStatus = "failure"
)

// Result is the uniform outcome shape every public ledger operation reports.
type Result struct {
	Status  ResultStatus `json:"status"`
	Message string       `json:"message"`
	Count   int          `json:"count"`
}

func Success(message string, count int) Result {
	return Result{Status: ResultSuccess, Message: message, Count: count}
}

// ResultFromError folds any error into a failure result. A nil error is a bare success.
func ResultFromError(err error) Result {
	if err == nil {
		return Result{Status: ResultSuccess}
	}
	return Result{Status: ResultFailure, Message: err.Error()}
}

func (r Result) OK() bool { return r.Status == ResultSuccess }
