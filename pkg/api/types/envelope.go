package types

const StatusSuccess = "SUCCESS"

// Envelope wraps payloads of some Scorch endpoints as {"status": ..., "data": ...}.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

func (e Envelope[T]) Succeeded() bool {
	return e.Status == StatusSuccess
}

// DeadLoop is the payload of the pipeline dead-loop check.
type DeadLoop struct {
	IsLoop bool `json:"isLoop"`
}
