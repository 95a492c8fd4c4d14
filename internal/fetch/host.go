package fetch

import (
	"net/url"
	"strings"
)

// Host is a known place people publish resumes.
type Host string

const (
	// HostGoogleDocs is a Google Docs document
	HostGoogleDocs Host = "google_docs"
	// HostGitHub is a file in a GitHub repository
	HostGitHub Host = "github"
	// HostNotion is a public Notion page, rendered client-side
	HostNotion Host = "notion"
	// HostGeneric is any other site
	HostGeneric Host = "generic"
)

// DetectHost identifies the resume host from a URL.
func DetectHost(urlStr string) Host {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return HostGeneric
	}
	host := strings.ToLower(parsed.Host)

	switch {
	case host == "docs.google.com" && strings.HasPrefix(parsed.Path, "/document/d/"):
		return HostGoogleDocs
	case host == "github.com" || host == "www.github.com":
		return HostGitHub
	case strings.HasSuffix(host, "notion.site") || strings.HasSuffix(host, "notion.so"):
		return HostNotion
	default:
		return HostGeneric
	}
}

// DirectURL rewrites share links into URLs that serve the document itself:
// Google Docs links become plain-text exports and GitHub blob links become raw
// file links. Other URLs are returned unchanged.
func DirectURL(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	switch DetectHost(urlStr) {
	case HostGoogleDocs:
		// /document/d/<id>/edit -> /document/d/<id>/export?format=txt
		parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(parts) < 3 || parts[2] == "" {
			return urlStr
		}
		return "https://docs.google.com/document/d/" + parts[2] + "/export?format=txt"
	case HostGitHub:
		// /<owner>/<repo>/blob/<ref>/<path> -> raw.githubusercontent.com/<owner>/<repo>/<ref>/<path>
		parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(parts) < 5 || parts[2] != "blob" {
			return urlStr
		}
		return "https://raw.githubusercontent.com/" + strings.Join(append(parts[:2:2], parts[3:]...), "/")
	default:
		return urlStr
	}
}

// NeedsBrowser reports whether pages on host only render their content with JavaScript.
func NeedsBrowser(host Host) bool {
	return host == HostNotion
}

// HostContentSelectors returns content selectors for a host.
func HostContentSelectors(host Host) []string {
	switch host {
	case HostNotion:
		return []string{".notion-page-content", "main"}
	case HostGitHub:
		return []string{"article.markdown-body", ".markdown-body", "main"}
	default:
		return ResumeSelectors()
	}
}

// HostNoiseSelectors returns elements to drop before extracting text.
func HostNoiseSelectors(host Host) []string {
	common := []string{
		".social-links",
		".share-buttons",
		".cookie-consent",
		".contact-form",
	}
	switch host {
	case HostNotion:
		return append(common, ".notion-topbar", ".notion-sidebar")
	case HostGitHub:
		return append(common, ".file-navigation", ".BorderGrid")
	default:
		return common
	}
}
