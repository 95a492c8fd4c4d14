package analysis

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillbyte/internal/llm"
	"github.com/jonathan/skillbyte/internal/ranking"
	"github.com/jonathan/skillbyte/internal/types"
)

const roundTripResume = "Resume\nSummary: 3 years experience with React and Node.js\n- built dashboard"

type fakeEnricher struct {
	result llm.Result
	calls  atomic.Int32
	text   string
}

func (f *fakeEnricher) Enrich(_ context.Context, text string) llm.Result {
	f.calls.Add(1)
	f.text = text
	return f.result
}

func TestAnalyze_RoundTrip(t *testing.T) {
	report, err := New(nil, nil, "").Analyze(context.Background(), roundTripResume)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.False(t, report.CreatedAt.IsZero())
	assert.Equal(t, []string{"JavaScript", "React", "Node"}, report.TechSkills)
	assert.Equal(t, []string{"JavaScript", "React", "Node"}, report.Profile.Technical)
	assert.Equal(t, types.TierIntermediate, report.Tier)
	assert.Equal(t, types.RoleFrontend, report.Role)
	assert.GreaterOrEqual(t, len(report.Feedback.Sections), 4)
	assert.Equal(t, types.FeedbackLocal, report.FeedbackSource)
	assert.Equal(t, report.Feedback.String(), report.FeedbackText)
	assert.Empty(t, report.RemoteError)
	assert.Equal(t, roundTripResume, report.Preview)

	titles := make([]string, 0, len(report.Recommendations))
	for _, m := range report.Recommendations {
		titles = append(titles, m.Job.Title)
	}
	assert.Equal(t, []string{"Junior Web Developer", "Frontend Developer Intern", "Junior Full Stack Developer"}, titles)

	require.Len(t, report.Listings, 3)
	assert.Equal(t, "Frontend Developer", report.Listings[0].Job.Title)
	assert.Equal(t, 2, report.Listings[0].Score)
	assert.Equal(t, "Full Stack Developer", report.Listings[1].Job.Title)
	assert.Equal(t, 1, report.Listings[1].Score)
}

func TestAnalyze_OverlapMode(t *testing.T) {
	a := New(nil, nil, ranking.ModeOverlap)
	assert.Equal(t, ranking.ModeOverlap, a.Mode())

	report, err := a.Analyze(context.Background(), roundTripResume)
	require.NoError(t, err)
	assert.Equal(t, report.Listings, report.Recommendations)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	enricher := &fakeEnricher{}
	for _, text := range []string{"", "   ", "\n\t\n"} {
		report, err := New(nil, enricher, "").Analyze(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Nil(t, report)
	}
	assert.Zero(t, enricher.calls.Load())
	assert.True(t, strings.HasPrefix(ErrEmptyInput.Error(), "Uploaded file contains no readable text"))
}

func TestAnalyze_RemoteFeedbackReplacesText(t *testing.T) {
	enricher := &fakeEnricher{result: llm.Result{Feedback: "Quantify the dashboard impact."}}

	report, err := New(nil, enricher, "").Analyze(context.Background(), roundTripResume)
	require.NoError(t, err)

	assert.Equal(t, int32(1), enricher.calls.Load())
	assert.Equal(t, roundTripResume, enricher.text)
	assert.Equal(t, "Quantify the dashboard impact.", report.FeedbackText)
	assert.Equal(t, types.FeedbackRemote, report.FeedbackSource)
	assert.NotEmpty(t, report.Feedback.Sections, "local document is kept")
}

func TestAnalyze_RemoteFailureFallsBack(t *testing.T) {
	remoteErr := &llm.RemoteError{
		Provider:   llm.ProviderOpenAI,
		Reason:     llm.ReasonHTTPStatus,
		StatusCode: 503,
		Message:    "service unavailable",
	}
	enricher := &fakeEnricher{result: llm.Result{Err: remoteErr}}

	report, err := New(nil, enricher, "").Analyze(context.Background(), roundTripResume)
	require.NoError(t, err)

	assert.Equal(t, types.FeedbackLocal, report.FeedbackSource)
	assert.Equal(t, report.Feedback.String(), report.FeedbackText)
	assert.Equal(t, remoteErr.Error(), report.RemoteError)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, nil, "").Analyze(ctx, roundTripResume)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_UnknownModeFails(t *testing.T) {
	_, err := New(nil, nil, ranking.Mode("random")).Analyze(context.Background(), roundTripResume)
	assert.Error(t, err)
}

func TestAnalyze_ConcurrentUse(t *testing.T) {
	a := New(nil, nil, "")
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := a.Analyze(context.Background(), roundTripResume)
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-errs)
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("é", PreviewChars+50)
	assert.Equal(t, PreviewChars, len([]rune(preview(long, PreviewChars))))
	assert.Equal(t, "short", preview("short", PreviewChars))
}
