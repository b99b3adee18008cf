package api

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestDefaultBaseURLTargetsProcessPath(t *testing.T) {
	var gotURL string
	client := NewClient(DefaultBaseURL)
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("<ONIXMessage/>")),
			Header:     make(http.Header),
		}, nil
	})

	_, err := client.Process(Submission{Parts: []Part{{Name: "epub_isbn", Value: "9781234567897"}}})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+DefaultProcessPath, gotURL)
}

func TestClientWithoutTimeoutIsUnbounded(t *testing.T) {
	client := NewClient(DefaultBaseURL)
	assert.Zero(t, client.httpClient.Timeout)
}
