package worker

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillbyte/internal/analysis"
	"github.com/jonathan/skillbyte/internal/fetch"
	"github.com/jonathan/skillbyte/internal/types"
)

const resumeText = "Resume\nSummary: 3 years experience with React and Node.js\n- built dashboard"

type fakeGetter struct {
	objects  map[string]string
	types    map[string]string
	failures int32
	calls    atomic.Int32
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.calls.Add(1) <= f.failures {
		return nil, errors.New("SlowDown")
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	out := &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}
	if ct, ok := f.types[key]; ok {
		out.ContentType = aws.String(ct)
	}
	return out, nil
}

func newTestProcessor(getter *fakeGetter) *Processor {
	var store *fetch.ObjectStore
	if getter != nil {
		store = fetch.NewObjectStoreWithClient(getter, "resumes")
	}
	p := NewProcessor(analysis.New(nil, nil, ""), store)
	p.backoff = time.Millisecond
	return p
}

func TestProcess_Text(t *testing.T) {
	report, err := newTestProcessor(nil).Process(context.Background(), Request{ID: "r1", Text: resumeText})
	require.NoError(t, err)
	assert.Equal(t, types.TierIntermediate, report.Tier)
	assert.Equal(t, []string{"JavaScript", "React", "Node"}, report.TechSkills)
}

func TestProcess_ObjectKey(t *testing.T) {
	getter := &fakeGetter{
		objects: map[string]string{
			"resumes/jane.txt":   resumeText,
			"archive/jane.md":    resumeText,
			"resumes/notes.blob": resumeText,
		},
		types: map[string]string{"resumes/jane.txt": "text/plain"},
	}
	p := newTestProcessor(getter)

	tests := []struct {
		name string
		req  Request
	}{
		{"default bucket", Request{ObjectKey: "jane.txt"}},
		{"explicit bucket", Request{ObjectKey: "s3://archive/jane.md"}},
		{"content type from request", Request{ObjectKey: "notes.blob", ContentType: "text/plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := p.Process(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, types.RoleFrontend, report.Role)
		})
	}
}

func TestProcess_RetriesDownload(t *testing.T) {
	getter := &fakeGetter{
		objects:  map[string]string{"resumes/jane.txt": resumeText},
		failures: 2,
	}
	_, err := newTestProcessor(getter).Process(context.Background(), Request{ObjectKey: "jane.txt"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), getter.calls.Load())
}

func TestProcess_DownloadGivesUp(t *testing.T) {
	getter := &fakeGetter{objects: map[string]string{}}
	_, err := newTestProcessor(getter).Process(context.Background(), Request{ObjectKey: "missing.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(DownloadAttempts), getter.calls.Load())
}

func TestProcess_Errors(t *testing.T) {
	_, err := newTestProcessor(nil).Process(context.Background(), Request{ID: "r1"})
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = newTestProcessor(nil).Process(context.Background(), Request{ObjectKey: "jane.txt"})
	assert.ErrorIs(t, err, ErrNoStore)

	_, err = newTestProcessor(&fakeGetter{}).Process(context.Background(), Request{ObjectKey: "s3://"})
	assert.Error(t, err)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := retry(ctx, 5, time.Hour, func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("boom")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
