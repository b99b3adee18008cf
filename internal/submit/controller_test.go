package submit

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deslibris/accessonix/cli/internal/api"
	"github.com/deslibris/accessonix/cli/internal/form"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 123_000_000, time.UTC)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

type processorFunc func(api.Submission) ([]byte, error)

func (f processorFunc) Process(sub api.Submission) ([]byte, error) { return f(sub) }

type failingSaver struct{}

func (failingSaver) Save(string, []byte) (string, error) { return "", errors.New("disk full") }

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))
	return path
}

func basicState(t *testing.T) *form.State {
	t.Helper()
	dir := t.TempDir()
	s := form.NewState(form.RoleBasic)
	s.Set(form.FieldEPUBFile, writeFile(t, dir, "book.epub", 64))
	s.Set(form.FieldONIXFile, writeFile(t, dir, "record.xml", 32))
	s.Set(form.FieldISBN, "9781234567897")
	return s
}

func TestSubmitDownloadsDocument(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "9781234567897", r.FormValue(form.FieldISBN))
		assert.Equal(t, "basic", r.FormValue(form.FieldRole))
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
		w.Write([]byte("<ONIXMessage>enhanced</ONIXMessage>"))
	}))
	t.Cleanup(srv.Close)

	outDir := t.TempDir()
	notifier := &recordingNotifier{}
	c := New(api.NewClient(srv.URL), DirSaver{Dir: outDir},
		WithClock(func() time.Time { return fixedNow }),
		WithNotifier(notifier),
		WithRequestIDs(func() string { return "req-42" }),
	)

	o := c.Submit(basicState(t))
	require.True(t, o.OK(), o.Message)
	assert.Equal(t, "AccessONIX_9781234567897_2024-03-09T140507123Z.xml", o.Filename)
	assert.Equal(t, filepath.Join(outDir, o.Filename), o.SavedPath)
	assert.Equal(t, "req-42", o.RequestID)

	data, err := os.ReadFile(o.SavedPath)
	require.NoError(t, err)
	assert.Equal(t, "<ONIXMessage>enhanced</ONIXMessage>", string(data))
	assert.Empty(t, notifier.messages)
	assert.False(t, c.Submitting())
	assert.EqualValues(t, 1, hits.Load())
}

func TestSubmitRejectedJoinsServerMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"errors": []string{"Bad ISBN", "Bad email"}})
	}))
	t.Cleanup(srv.Close)

	outDir := t.TempDir()
	notifier := &recordingNotifier{}
	c := New(api.NewClient(srv.URL), DirSaver{Dir: outDir}, WithNotifier(notifier))

	o := c.Submit(basicState(t))
	assert.Equal(t, KindRejected, o.Kind)
	assert.Equal(t, "Bad ISBN\nBad email", o.Message)
	assert.Equal(t, []string{"Bad ISBN\nBad email"}, notifier.messages)
	assert.False(t, c.Submitting())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmitTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	notifier := &recordingNotifier{}
	c := New(api.NewClient(url), DirSaver{Dir: t.TempDir()}, WithNotifier(notifier))

	o := c.Submit(basicState(t))
	assert.Equal(t, KindTransportFailed, o.Kind)
	assert.Equal(t, "Submission failed: could not reach the processing service", o.Message)
	require.Len(t, notifier.messages, 1)
	assert.False(t, c.Submitting())
}

func TestSubmitInvalidFormMakesNoRequest(t *testing.T) {
	called := false
	c := New(processorFunc(func(api.Submission) ([]byte, error) {
		called = true
		return nil, nil
	}), DirSaver{Dir: t.TempDir()})

	s := basicState(t)
	s.Set(form.FieldISBN, "97812345")
	o := c.Submit(s)
	assert.Equal(t, KindInvalid, o.Kind)
	assert.Equal(t, form.MsgInvalidISBN, o.Message)
	assert.False(t, called)
	assert.False(t, c.Submitting())
}

func TestSubmitSaveFailureReleasesFlag(t *testing.T) {
	c := New(processorFunc(func(api.Submission) ([]byte, error) {
		return []byte("<x/>"), nil
	}), failingSaver{}, WithClock(func() time.Time { return fixedNow }))

	o := c.Submit(basicState(t))
	assert.Equal(t, KindSaveFailed, o.Kind)
	assert.Contains(t, o.Message, "AccessONIX_9781234567897_")
	assert.False(t, c.Submitting())
}

func TestBeginIsSingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	c := New(processorFunc(func(api.Submission) ([]byte, error) {
		calls.Add(1)
		close(started)
		<-release
		return []byte("<x/>"), nil
	}), DirSaver{Dir: t.TempDir()})

	s := basicState(t)
	req, ok := c.Begin(s)
	require.True(t, ok)

	done := make(chan Outcome, 1)
	go func() { done <- c.Finish(c.Send(req)) }()
	<-started

	assert.True(t, c.Submitting())
	_, ok = c.Begin(s)
	assert.False(t, ok)

	notifier := &recordingNotifier{}
	WithNotifier(notifier)(c)
	o := c.Submit(s)
	assert.Equal(t, KindBusy, o.Kind)
	assert.Equal(t, []string{MsgBusy}, notifier.messages)

	close(release)
	assert.True(t, (<-done).OK())
	assert.False(t, c.Submitting())
	assert.EqualValues(t, 1, calls.Load())

	_, ok = c.Begin(s)
	assert.True(t, ok)
}

func TestBeginSnapshotsFormInWireOrder(t *testing.T) {
	c := New(nil, nil, WithRequestIDs(func() string { return "id-1" }))
	s := basicState(t)
	s.SetRole(form.RoleEnhanced)
	s.Set(form.FieldPriceUSD, "4.50")

	req, ok := c.Begin(s)
	require.True(t, ok)
	s.Set(form.FieldISBN, "0000000000000")

	assert.Equal(t, "9781234567897", req.ISBN)
	assert.Equal(t, "id-1", req.Submission.RequestID)
	require.Len(t, req.Submission.Parts, len(form.Fields))
	for i, p := range req.Submission.Parts {
		assert.Equal(t, form.Fields[i].Name, p.Name)
	}
	assert.True(t, req.Submission.Parts[0].File)
	assert.Equal(t, "4.50", req.Submission.Parts[len(form.Fields)-1].Value)
}

func TestValidateChecksFileSizes(t *testing.T) {
	c := New(nil, nil)

	s := basicState(t)
	require.NoError(t, os.Truncate(s.EPUB().Path, MaxEPUBSize+1))
	assert.Equal(t, "EPUB file exceeds the 10 MiB limit", c.Validate(s).Message)

	s = basicState(t)
	require.NoError(t, os.Truncate(s.ONIX().Path, MaxONIXSize+1))
	assert.Equal(t, "ONIX file exceeds the 5.0 MiB limit", c.Validate(s).Message)

	s = basicState(t)
	require.NoError(t, os.Remove(s.EPUB().Path))
	assert.Equal(t, "EPUB file not found", c.Validate(s).Message)
}

func TestValidateRunsFormPipelineFirst(t *testing.T) {
	var statted bool
	c := New(nil, nil, WithStat(func(string) (os.FileInfo, error) {
		statted = true
		return nil, os.ErrNotExist
	}))
	s := form.NewState(form.RoleBasic)
	s.Set(form.FieldISBN, "9781234567897")
	assert.Equal(t, form.MsgFilesRequired, c.Validate(s).Message)
	assert.False(t, statted)
}

func TestDescribeFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "book.epub", 2048)
	assert.Equal(t, "book.epub (2.0 KiB)", DescribeFile(path))
	assert.Equal(t, "missing.epub", DescribeFile("/nowhere/missing.epub"))
	assert.Equal(t, "", DescribeFile(""))
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	WriterNotifier{W: &buf}.Notify("Bad ISBN")
	assert.Equal(t, "error: Bad ISBN\n", buf.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "download_ready", KindDownloadReady.String())
	assert.Equal(t, "busy", KindBusy.String())
}
