package fetch

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Document is a raw resume file and what is known about its format
type Document struct {
	Source      string
	Name        string
	ContentType string
	Data        []byte
}

// Resolver loads documents from local paths, http(s) URLs and s3:// URIs.
type Resolver struct {
	Options *Options
	// Store serves s3:// sources; nil disables them
	Store *ObjectStore
	// Browser enables headless rendering for pages whose text is too short
	Browser        bool
	BrowserTimeout time.Duration

	render rendererFunc
}

// NewResolver creates a resolver with default HTTP options
func NewResolver(store *ObjectStore, browser bool) *Resolver {
	return &Resolver{
		Options:        DefaultOptions(),
		Store:          store,
		Browser:        browser,
		BrowserTimeout: DefaultTimeout,
		render:         Render,
	}
}

// Resolve loads the document named by source
func (r *Resolver) Resolve(ctx context.Context, source string) (*Document, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return r.fromURL(ctx, source)
	case strings.HasPrefix(source, "s3://"):
		return r.fromStore(ctx, source)
	default:
		return fromFile(source)
	}
}

func fromFile(p string) (*Document, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{URL: p, Message: "file not found", Cause: err}
		}
		return nil, &Error{URL: p, Message: "failed to read file", Cause: err}
	}
	if len(data) > MaxDocumentBytes {
		return nil, &Error{URL: p, Message: fmt.Sprintf("document larger than %d bytes", MaxDocumentBytes)}
	}
	name := filepath.Base(p)
	return &Document{
		Source:      p,
		Name:        name,
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(name))),
		Data:        data,
	}, nil
}

func (r *Resolver) fromURL(ctx context.Context, source string) (*Document, error) {
	host := DetectHost(source)
	target := DirectURL(source)
	if target != source {
		log.Printf("[fetch] %s link rewritten to %s", host, target)
	}

	opts := r.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	result, err := URL(ctx, target, opts)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Source:      source,
		Name:        path.Base(strings.TrimSuffix(result.URL, "/")),
		ContentType: result.ContentType,
		Data:        result.Body,
	}

	if !r.Browser || !isHTML(doc.ContentType) {
		return doc, nil
	}

	text, err := ExtractMainText(result.HTML(), HostContentSelectors(host), HostNoiseSelectors(host)...)
	if err == nil && !NeedsBrowser(host) && !ShouldUseBrowser(text) {
		return doc, nil
	}

	timeout := r.BrowserTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rendered, err := r.render.render(ctx, target, timeout)
	if err != nil {
		// the plain HTTP body is still usable
		log.Printf("[fetch] browser fallback failed, using HTTP content: %v", err)
		return doc, nil
	}
	doc.Data = []byte(rendered)
	doc.ContentType = "text/html; charset=utf-8"
	return doc, nil
}

func (r *Resolver) fromStore(ctx context.Context, source string) (*Document, error) {
	if r.Store == nil {
		return nil, &Error{URL: source, Message: "object storage is not configured"}
	}
	bucket, key, err := ParseObjectURI(source)
	if err != nil {
		return nil, &Error{URL: source, Message: "invalid object URI", Cause: err}
	}
	data, contentType, err := r.Store.Get(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	if contentType == "" || contentType == "binary/octet-stream" {
		contentType = mime.TypeByExtension(strings.ToLower(path.Ext(key)))
	}
	return &Document{
		Source:      source,
		Name:        path.Base(key),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func isHTML(contentType string) bool {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
