package lambda

import "fmt"

// Outcome is the result of processing one record of a batch event
type Outcome[T any] struct {
	Index int
	Value T
	Err   error
}

// OK reports whether the record was processed successfully
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Fold applies fn to every record in order and collects one outcome per record.
// A failure, including a panic, in one record never stops the next from being
// attempted. Nothing is retried.
func Fold[R, T any](records []R, fn func(index int, record R) (T, error)) []Outcome[T] {
	outcomes := make([]Outcome[T], 0, len(records))
	for i, record := range records {
		outcomes = append(outcomes, apply(i, record, fn))
	}
	return outcomes
}

func apply[R, T any](index int, record R, fn func(int, R) (T, error)) (out Outcome[T]) {
	out.Index = index
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("record %d panicked: %v", index, r)
		}
	}()
	out.Value, out.Err = fn(index, record)
	return out
}

// CountSuccesses returns how many outcomes carry no error
func CountSuccesses[T any](outcomes []Outcome[T]) int {
	n := 0
	for _, o := range outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}
