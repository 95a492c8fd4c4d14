// Package analysis runs the full resume pipeline: skills, experience tier, job
// matches, local feedback and optional remote enrichment.
package analysis

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillbyte/internal/catalog"
	"github.com/jonathan/skillbyte/internal/experience"
	"github.com/jonathan/skillbyte/internal/feedback"
	"github.com/jonathan/skillbyte/internal/llm"
	"github.com/jonathan/skillbyte/internal/ranking"
	"github.com/jonathan/skillbyte/internal/skills"
	"github.com/jonathan/skillbyte/internal/types"
)

// PreviewChars is the length of Report.Preview
const PreviewChars = 300

// ErrEmptyInput is returned for text with no readable content. Its message is
// shown to users as is.
var ErrEmptyInput = errors.New("Uploaded file contains no readable text. Try a TXT file or a clearer image.") //nolint:staticcheck // user-facing message

// Enricher produces remote feedback. *llm.Adapter implements it.
type Enricher interface {
	Enrich(ctx context.Context, text string) llm.Result
}

// Analyzer wires the pipeline components over one catalog. It is safe for
// concurrent use.
type Analyzer struct {
	extractor  *skills.Extractor
	classifier *experience.Classifier
	matcher    *ranking.Matcher
	composer   *feedback.Composer
	enricher   Enricher
	mode       ranking.Mode
}

// New creates an analyzer. A nil catalog means the built-in one, a nil enricher
// keeps the analysis local, and an empty mode selects eligibility matching.
func New(cat *catalog.Catalog, enricher Enricher, mode ranking.Mode) *Analyzer {
	if cat == nil {
		cat = catalog.Default()
	}
	if mode == "" {
		mode = ranking.ModeEligibility
	}
	return &Analyzer{
		extractor:  skills.NewExtractor(cat),
		classifier: experience.NewClassifier(cat),
		matcher:    ranking.NewMatcher(cat),
		composer:   feedback.NewComposer(cat),
		enricher:   enricher,
		mode:       mode,
	}
}

// Mode returns the matching mode used for Report.Recommendations
func (a *Analyzer) Mode() ranking.Mode {
	return a.mode
}

// Matcher exposes the job matcher for callers that rank a skill list directly
func (a *Analyzer) Matcher() *ranking.Matcher {
	return a.matcher
}

// Analyze builds the report for text. The local pipeline and the remote call
// run concurrently; a remote failure only falls back to local feedback.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*types.Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	report := &types.Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Preview:   preview(text, PreviewChars),
	}

	var remote llm.Result
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.local(report, text)
	})
	if a.enricher != nil {
		g.Go(func() error {
			remote = a.enricher.Enrich(gctx, text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.FeedbackText = report.Feedback.String()
	report.FeedbackSource = types.FeedbackLocal
	switch {
	case remote.OK():
		report.FeedbackText = remote.Feedback
		report.FeedbackSource = types.FeedbackRemote
	case remote.Err != nil:
		report.RemoteError = remote.Err.Error()
	}

	log.Printf("[analysis] %s: tier=%s role=%s skills=%d feedback=%s",
		report.ID, report.Tier, report.Role, len(report.TechSkills), report.FeedbackSource)
	return report, nil
}

func (a *Analyzer) local(report *types.Report, text string) error {
	report.Profile = a.extractor.Extract(text)
	report.TechSkills = a.extractor.ExtractTech(text)
	report.Tier = a.classifier.Classify(text)

	recommendations, err := a.matcher.Match(a.mode, report.Profile, report.TechSkills, report.Tier)
	if err != nil {
		return err
	}
	report.Recommendations = recommendations
	report.Listings = a.matcher.RankByOverlap(report.TechSkills)

	report.Feedback = a.composer.Compose(text)
	report.Role = report.Feedback.Role
	return nil
}

// preview returns the first n characters of text
func preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n])
}
