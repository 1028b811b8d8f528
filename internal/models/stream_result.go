package models

// StreamResult is one item of a streamed listing. Exactly one of Value and Err
// is meaningful; an Err is always the last item sent before the channel closes.
type StreamResult[T any] struct {
	Value T
	Err   error
}
