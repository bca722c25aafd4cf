package remote

import "fmt"

type Outcome int

const (
	// Skipped: no remote configured, the caller goes straight to local.
	Skipped Outcome = iota
	Succeeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "skipped"
}

// Result is the outcome of one remote attempt. Gateways branch on Outcome
// instead of catching errors.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Err     error
}

func (r Result[T]) Ok() bool { return r.Outcome == Succeeded }

func skipped[T any]() Result[T] { return Result[T]{Outcome: Skipped} }

func succeeded[T any](v T) Result[T] { return Result[T]{Outcome: Succeeded, Value: v} }

func failed[T any](err error) Result[T] { return Result[T]{Outcome: Failed, Err: err} }

// StatusError is a non-2xx answer. Title is the page title when the server
// answered with HTML.
type StatusError struct {
	Code  int
	Title string
}

func (e *StatusError) Error() string { return fmt.Sprintf("API error: %d", e.Code) }
