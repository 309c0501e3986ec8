package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/reportgest/internal/llm"
)

// recordingBackend echoes a numbered summary per chunk and records inputs.
type recordingBackend struct {
	chunks []string
	params []Params
	failAt int // 1-based call number to fail on; 0 never fails
	err    error
}

func (b *recordingBackend) Summarize(_ context.Context, text string, p Params) (string, error) {
	b.chunks = append(b.chunks, text)
	b.params = append(b.params, p)
	if b.failAt > 0 && len(b.chunks) == b.failAt {
		return "", b.err
	}
	return fmt.Sprintf("s%d ", len(b.chunks)), nil
}

func TestSummarizeSection_OneCallPerChunk(t *testing.T) {
	for _, n := range []int{1, 1023, 1024, 1025, 2048, 3000} {
		b := &recordingBackend{}
		s := New(b, Config{}, nil)
		section := strings.Repeat("z", n)

		_, err := s.SummarizeSection(context.Background(), section)
		require.NoError(t, err)

		want := (n + 1023) / 1024
		assert.Len(t, b.chunks, want, "length %d", n)
		assert.Equal(t, section, strings.Join(b.chunks, ""), "chunks must partition the section")
	}
}

func TestSummarizeSection_JoinsWithSingleSpaceAndTrims(t *testing.T) {
	b := &recordingBackend{}
	s := New(b, Config{ChunkSize: 4}, nil)

	out, err := s.SummarizeSection(context.Background(), "abcdefghij")
	require.NoError(t, err)
	// Backend fragments carry a trailing space; joined output is trimmed.
	assert.Equal(t, "s1  s2  s3", out)
}

func TestSummarizeSection_DefaultParams(t *testing.T) {
	b := &recordingBackend{}
	s := New(b, Config{}, nil)

	_, err := s.SummarizeSection(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, b.params, 1)
	assert.Equal(t, Params{MaxLength: 100, MinLength: 30, Deterministic: true}, b.params[0])
}

func TestSummarizeSection_EmptySection(t *testing.T) {
	b := &recordingBackend{}
	s := New(b, Config{}, nil)

	out, err := s.SummarizeSection(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, b.chunks)
}

func TestSummarizeSection_PropagatesFailure(t *testing.T) {
	boom := errors.New("model offline")
	b := &recordingBackend{failAt: 2, err: boom}
	s := New(b, Config{ChunkSize: 2}, nil)

	_, err := s.SummarizeSection(context.Background(), "aabbcc")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "chunk 2/3")
	assert.Len(t, b.chunks, 2, "no further chunks after a failure")
}

func TestSummarizeSection_NoRetryByDefault(t *testing.T) {
	b := &recordingBackend{failAt: 1, err: &llm.RetryableError{StatusCode: 503}}
	s := New(b, Config{}, nil)

	_, err := s.SummarizeSection(context.Background(), "text")
	require.Error(t, err)
	assert.Len(t, b.chunks, 1)
}

func TestHuggingFaceClient_Summarize(t *testing.T) {
	var got hfRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/facebook/bart-large-cnn", r.URL.Path)
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`[{"summary_text":"Revenue grew 10%."}]`))
	}))
	defer ts.Close()

	c := NewHuggingFaceClient(HFConfig{Token: "hf-token", BaseURL: ts.URL}, nil)
	defer c.Close()

	out, err := c.Summarize(context.Background(), "long text", DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, "Revenue grew 10%.", out)
	assert.Equal(t, "long text", got.Inputs)
	assert.Equal(t, 100, got.Parameters.MaxLength)
	assert.Equal(t, 30, got.Parameters.MinLength)
	assert.False(t, got.Parameters.DoSample)
}

func TestHuggingFaceClient_LoadingModelIsRetryable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer ts.Close()

	c := NewHuggingFaceClient(HFConfig{BaseURL: ts.URL}, nil)
	_, err := c.Summarize(context.Background(), "text", DefaultParams())
	require.Error(t, err)
	assert.True(t, llm.IsRetryable(err))
}

func TestHuggingFaceClient_EmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := NewHuggingFaceClient(HFConfig{BaseURL: ts.URL, Model: "sshleifer/distilbart-cnn-12-6"}, nil)
	_, err := c.Summarize(context.Background(), "text", DefaultParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty summary")
	assert.Equal(t, "sshleifer/distilbart-cnn-12-6", c.Model())
}
