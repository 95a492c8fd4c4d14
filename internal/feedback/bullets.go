package feedback

import (
	"regexp"
	"strings"
)

const (
	maxBullets  = 6
	maxRewrites = 3
)

var (
	bulletMarker  = regexp.MustCompile(`^[-*\x{2022}\s]+`)
	achievement   = regexp.MustCompile(`(?i)\b(managed|developed|built|implemented|led|created|designed|improved)\b`)
	verbAndObject = regexp.MustCompile(`(?i)\b(created|built|developed|designed|improved|led|implemented|managed|optimized)\b\s+(.*)`)
	trailingScope = regexp.MustCompile(`(?i)\b(for|to|using)\b.*`)
)

// impactTemplates are appended to "<verb> <object>" to suggest quantified rewrites
var impactTemplates = []string{
	"reducing load time by 40% and improving user satisfaction",
	"serving 50K+ daily active users with 99.9% uptime",
	"resulting in 30% increase in developer productivity",
}

type rewrite struct {
	original    string
	suggestions []string
}

// splitLines returns the trimmed, non-empty lines of text
func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// summaryLine picks the first line mentioning "summary", else the first line
func summaryLine(lines []string) string {
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l), "summary") {
			return l
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}

// detectBullets returns up to maxBullets lines that look like achievements:
// either marked as list items or containing an action verb. Unmarked lines
// with a whole-word verb count too, so pasted resumes that lost their list
// markers still get rewrite suggestions.
func detectBullets(lines []string) []string {
	var bullets []string
	for _, l := range lines {
		if len(bullets) == maxBullets {
			break
		}
		if bulletMarker.MatchString(l) || achievement.MatchString(l) {
			bullets = append(bullets, l)
		}
	}
	return bullets
}

// rewriteBullets suggests metric-driven variants for the first bullets that have
// an action verb followed by an object
func rewriteBullets(bullets []string) []rewrite {
	var out []rewrite
	for i, b := range bullets {
		if i == maxRewrites {
			break
		}
		original := bulletMarker.ReplaceAllString(b, "")
		m := verbAndObject.FindStringSubmatch(original)
		if m == nil {
			continue
		}
		object := strings.TrimSpace(trailingScope.ReplaceAllString(m[2], ""))
		phrase := strings.TrimSpace(m[1] + " " + object)

		suggestions := make([]string, len(impactTemplates))
		for j, impact := range impactTemplates {
			suggestions[j] = "• " + phrase + " " + impact
		}
		out = append(out, rewrite{original: original, suggestions: suggestions})
	}
	return out
}
