package fetch

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	objects map[string]string
	types   map[string]string
	lastIn  *s3.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastIn = in
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

func TestStoreConfig_ResolvedEndpoint(t *testing.T) {
	assert.Equal(t, "", StoreConfig{}.ResolvedEndpoint())
	assert.Equal(t, "https://acct42.r2.cloudflarestorage.com", StoreConfig{AccountID: "acct42"}.ResolvedEndpoint())
	assert.Equal(t, "http://localhost:9000", StoreConfig{AccountID: "acct42", Endpoint: "http://localhost:9000"}.ResolvedEndpoint())
}

func TestParseObjectURI(t *testing.T) {
	bucket, key, err := ParseObjectURI("s3://resumes/2024/jane.pdf")
	require.NoError(t, err)
	assert.Equal(t, "resumes", bucket)
	assert.Equal(t, "2024/jane.pdf", key)

	bucket, key, err = ParseObjectURI("s3:///jane.pdf")
	require.NoError(t, err)
	assert.Equal(t, "", bucket)
	assert.Equal(t, "jane.pdf", key)

	_, _, err = ParseObjectURI("https://resumes/jane.pdf")
	assert.Error(t, err)

	_, _, err = ParseObjectURI("s3://resumes/")
	assert.Error(t, err)
}

func TestObjectStore_Get(t *testing.T) {
	getter := &fakeGetter{
		objects: map[string]string{"resumes/jane.txt": "Skills: Go"},
		types:   map[string]string{"resumes/jane.txt": "text/plain"},
	}
	store := NewObjectStoreWithClient(getter, "resumes")

	data, contentType, err := store.Get(context.Background(), "", "jane.txt")
	require.NoError(t, err)
	assert.Equal(t, "Skills: Go", string(data))
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, "resumes", aws.ToString(getter.lastIn.Bucket))
}

func TestObjectStore_GetMissing(t *testing.T) {
	store := NewObjectStoreWithClient(&fakeGetter{}, "resumes")

	_, _, err := store.Get(context.Background(), "resumes", "nope.pdf")
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "s3://resumes/nope.pdf", fetchErr.URL)
}

func TestObjectStore_GetRequiresBucket(t *testing.T) {
	store := NewObjectStoreWithClient(&fakeGetter{}, "")

	_, _, err := store.Get(context.Background(), "", "jane.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket and key are required")
}
