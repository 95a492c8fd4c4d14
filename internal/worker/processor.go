package worker

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/jonathan/skillbyte/internal/analysis"
	"github.com/jonathan/skillbyte/internal/fetch"
	"github.com/jonathan/skillbyte/internal/ingestion"
	"github.com/jonathan/skillbyte/internal/types"
)

// ErrNoInput is returned for a request with neither text nor an object key
var ErrNoInput = errors.New("request has no text and no object_key")

// ErrNoStore is returned for an object_key request when object storage is not configured
var ErrNoStore = errors.New("object storage is not configured")

// DownloadAttempts bounds object storage retries
const DownloadAttempts = 3

// Processor turns a Request into a report.
type Processor struct {
	analyzer *analysis.Analyzer
	store    *fetch.ObjectStore
	backoff  time.Duration
}

// NewProcessor creates a processor. store may be nil when every producer sends text.
func NewProcessor(analyzer *analysis.Analyzer, store *fetch.ObjectStore) *Processor {
	return &Processor{analyzer: analyzer, store: store, backoff: 500 * time.Millisecond}
}

// Process loads the request's text and analyzes it.
func (p *Processor) Process(ctx context.Context, req Request) (*types.Report, error) {
	text, err := p.text(ctx, req)
	if err != nil {
		return nil, err
	}
	return p.analyzer.Analyze(ctx, text)
}

func (p *Processor) text(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) != "" {
		return req.Text, nil
	}
	if req.ObjectKey == "" {
		return "", ErrNoInput
	}
	if p.store == nil {
		return "", ErrNoStore
	}

	bucket, key := "", req.ObjectKey
	if strings.HasPrefix(req.ObjectKey, "s3://") {
		var err error
		bucket, key, err = fetch.ParseObjectURI(req.ObjectKey)
		if err != nil {
			return "", err
		}
	}

	type object struct {
		data        []byte
		contentType string
	}
	obj, err := retry(ctx, DownloadAttempts, p.backoff, func() (object, error) {
		data, contentType, err := p.store.Get(ctx, bucket, key)
		return object{data: data, contentType: contentType}, err
	})
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", req.ObjectKey, err)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = obj.contentType
	}
	name := path.Base(key)
	return ingestion.ExtractText(ingestion.DetectType(contentType, name), name, obj.data)
}

// retry calls fn up to attempts times, waiting a linearly growing backoff
// between calls.
func retry[T any](ctx context.Context, attempts int, backoff time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff * time.Duration(i+1)):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
