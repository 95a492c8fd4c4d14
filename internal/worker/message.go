package worker

import (
	"time"

	"github.com/jonathan/skillbyte/internal/types"
)

// Status values published on the results exchange
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Request is one message on the requests queue. Exactly one of Text and
// ObjectKey is expected; Text wins when both are set.
type Request struct {
	ID string `json:"id"`
	// Text is resume text already extracted by the producer
	Text string `json:"text,omitempty"`
	// ObjectKey is "s3://bucket/key" or a key in the default bucket
	ObjectKey   string `json:"object_key,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Update is published for every state change of a request.
type Update struct {
	ID        string        `json:"id"`
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Report    *types.Report `json:"report,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
