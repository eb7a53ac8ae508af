package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPutImage_KeyAndPayload(t *testing.T) {
	fp := &fakePutter{}
	store := newS3ImageStore(fp, "faces")
	store.now = func() time.Time { return time.Date(2025, 2, 7, 12, 0, 0, 0, time.UTC) }

	key, err := store.PutImage(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^uploads/2025/02/07/[0-9a-f-]{36}\.png$`), key)
	assert.Equal(t, "faces", *fp.input.Bucket)
	assert.Equal(t, key, *fp.input.Key)
	assert.Equal(t, "image/png", *fp.input.ContentType)
	assert.Equal(t, []byte("png-bytes"), fp.body)
}

func TestPutImage_JPEGExtension(t *testing.T) {
	store := newS3ImageStore(&fakePutter{}, "faces")

	key, err := store.PutImage(context.Background(), []byte("jpg"), "image/jpeg")
	require.NoError(t, err)
	assert.Regexp(t, `\.jpg$`, key)
}

func TestPutImage_Error(t *testing.T) {
	store := newS3ImageStore(&fakePutter{err: errors.New("access denied")}, "faces")

	_, err := store.PutImage(context.Background(), []byte("x"), "image/png")
	assert.ErrorContains(t, err, "access denied")
}
