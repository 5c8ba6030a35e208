package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestUploader_SavesLocally(t *testing.T) {
	root := t.TempDir()
	u := NewUploader(NewLocalStore(root), 1024)

	rel, err := u.save(context.Background(), "museum.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Regexp(t, `^images/[0-9a-f-]{36}-museum\.png$`, rel)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
	assert.Equal(t, "/static/"+rel, u.URL(rel))
	assert.Equal(t, "", u.URL(""))
}

func TestUploader_SameNameDoesNotOverwrite(t *testing.T) {
	root := t.TempDir()
	u := NewUploader(NewLocalStore(root), 1024)
	first := append(append([]byte{}, pngHeader...), 'A')
	second := append(append([]byte{}, pngHeader...), 'B')

	relA, err := u.save(context.Background(), "museum.png", bytes.NewReader(first))
	require.NoError(t, err)
	relB, err := u.save(context.Background(), "museum.png", bytes.NewReader(second))
	require.NoError(t, err)
	assert.NotEqual(t, relA, relB)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relA)))
	require.NoError(t, err)
	assert.Equal(t, first, data)
}

func TestUploader_Discard(t *testing.T) {
	root := t.TempDir()
	u := NewUploader(NewLocalStore(root), 1024)

	rel, err := u.save(context.Background(), "museum.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NoError(t, u.Discard(context.Background(), rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, u.Discard(context.Background(), rel), "already gone")
	assert.NoError(t, u.Discard(context.Background(), ""))
}

func TestUploader_RejectsNonImages(t *testing.T) {
	u := NewUploader(NewLocalStore(t.TempDir()), 1024)

	_, err := u.save(context.Background(), "notes.png", strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestUploader_RejectsLargeFiles(t *testing.T) {
	u := NewUploader(NewLocalStore(t.TempDir()), int64(len(pngHeader)-1))

	_, err := u.save(context.Background(), "big.png", bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestUploader_NoFile(t *testing.T) {
	u := NewUploader(NewLocalStore(t.TempDir()), 1024)

	rel, err := u.Store(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rel)
}

type fakeObjects struct {
	input   *s3.PutObjectInput
	body    []byte
	deleted []string
	err     error
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, f.err
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(in.Body); err != nil {
		return nil, err
	}
	f.body = buf.Bytes()
	return &s3.PutObjectOutput{}, f.err
}

func TestR2Store(t *testing.T) {
	fake := &fakeObjects{}
	st := &R2Store{client: fake, bucket: "attractions", publicURL: "https://img.example.com/"}
	u := NewUploader(st, 1024)

	rel, err := u.save(context.Background(), "park.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "attractions", aws.ToString(fake.input.Bucket))
	assert.Equal(t, rel, aws.ToString(fake.input.Key))
	assert.True(t, strings.HasSuffix(rel, "-park.png"))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, pngHeader, fake.body)
	assert.Equal(t, "https://img.example.com/"+rel, u.URL(rel))

	require.NoError(t, u.Discard(context.Background(), rel))
	assert.Equal(t, []string{rel}, fake.deleted)

	fake.err = errors.New("boom")
	_, err = u.save(context.Background(), "park.png", bytes.NewReader(pngHeader))
	assert.Error(t, err)
}
