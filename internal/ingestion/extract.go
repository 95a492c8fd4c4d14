package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skillbyte/internal/fetch"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported media types.
const (
	TypePlain    = "text/plain"
	TypeMarkdown = "text/markdown"
	TypeHTML     = "text/html"
	TypePDF      = "application/pdf"
	TypeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypeBinary   = "application/octet-stream"
)

// ErrUnsupportedType is matched by every UnsupportedTypeError.
var ErrUnsupportedType = errors.New("unsupported document type")

// UnsupportedTypeError is returned for documents whose text cannot be read,
// including images, which need OCR.
type UnsupportedTypeError struct {
	ContentType string
	Filename    string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("unsupported document type %q (%s)", e.ContentType, e.Filename)
	}
	return fmt.Sprintf("unsupported document type %q", e.ContentType)
}

// Is makes errors.Is(err, ErrUnsupportedType) true.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ExtractError reports a document that claimed a supported type but could not be parsed.
type ExtractError struct {
	ContentType string
	Message     string
	Cause       error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.ContentType, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

var extensionTypes = map[string]string{
	".txt":      TypePlain,
	".text":     TypePlain,
	".md":       TypeMarkdown,
	".markdown": TypeMarkdown,
	".htm":      TypeHTML,
	".html":     TypeHTML,
	".pdf":      TypePDF,
	".docx":     TypeDOCX,
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// DetectType resolves the media type of a document. A missing or generic
// content type is replaced by the one implied by the file extension.
func DetectType(contentType, filename string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}
	mediaType = strings.ToLower(mediaType)

	if mediaType == "" || mediaType == TypeBinary || mediaType == "binary/octet-stream" {
		if byExt, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ok {
			return byExt
		}
		return TypeBinary
	}
	return mediaType
}

// ExtractText returns the cleaned plain text of a document.
func ExtractText(contentType, filename string, data []byte) (string, error) {
	mediaType := DetectType(contentType, filename)

	var (
		text string
		err  error
	)
	switch {
	case mediaType == TypePlain, mediaType == TypeMarkdown:
		text = string(data)
	case mediaType == TypeBinary:
		// untyped uploads are accepted as text when they decode as UTF-8
		if !utf8.Valid(data) {
			return "", &UnsupportedTypeError{ContentType: mediaType, Filename: filename}
		}
		text = string(data)
	case mediaType == TypeHTML, mediaType == "application/xhtml+xml":
		text, err = fetch.ExtractMainText(string(data), fetch.ResumeSelectors(), fetch.HostNoiseSelectors(fetch.HostGeneric)...)
		if err != nil {
			return "", &ExtractError{ContentType: mediaType, Message: "failed to parse html", Cause: err}
		}
	case mediaType == TypePDF:
		text, err = extractPDF(data)
	case mediaType == TypeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", &UnsupportedTypeError{ContentType: mediaType, Filename: filename}
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractError{ContentType: TypePDF, Message: fmt.Sprintf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{ContentType: TypePDF, Message: "failed to read pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractError{ContentType: TypePDF, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{ContentType: TypeDOCX, Message: "failed to parse docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxText(doc.Editable().GetContent()), nil
}

// docxText turns WordprocessingML into plain text, one paragraph per line.
func docxText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
