// Package submit drives a form submission from validation through the
// processing call to saving the returned document.
package submit

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/deslibris/accessonix/cli/internal/api"
	"github.com/deslibris/accessonix/cli/internal/form"
	"github.com/deslibris/accessonix/cli/internal/logging"
)

// Kind tags a submission outcome.
type Kind int

const (
	KindInvalid Kind = iota
	KindDownloadReady
	KindRejected
	KindTransportFailed
	KindSaveFailed
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindDownloadReady:
		return "download_ready"
	case KindRejected:
		return "rejected"
	case KindTransportFailed:
		return "transport_failed"
	case KindSaveFailed:
		return "save_failed"
	case KindBusy:
		return "busy"
	}
	return "unknown"
}

// MsgBusy is reported when a submit arrives while one is in flight.
const MsgBusy = "A submission is already in progress"

// Outcome is the result of one submit attempt. Message is always safe to
// show to the user.
type Outcome struct {
	Kind      Kind
	Message   string
	Messages  []string
	Document  []byte
	Filename  string
	SavedPath string
	RequestID string
}

// OK reports whether the document was produced.
func (o Outcome) OK() bool {
	return o.Kind == KindDownloadReady
}

// Processor sends a submission to the processing service.
type Processor interface {
	Process(sub api.Submission) ([]byte, error)
}

// Saver stores a downloaded document and returns where it went.
type Saver interface {
	Save(name string, data []byte) (string, error)
}

// Notifier surfaces a failure message to the user.
type Notifier interface {
	Notify(message string)
}

// Request is a snapshot of the form taken when the submit starts, so the
// network call never reads live form state.
type Request struct {
	Submission api.Submission
	ISBN       string
}

// Controller owns the submit lifecycle. At most one submission is in flight:
// Begin acquires the submitting flag and Finish always releases it.
type Controller struct {
	processor  Processor
	saver      Saver
	notifier   Notifier
	logger     *slog.Logger
	now        func() time.Time
	stat       func(string) (os.FileInfo, error)
	newID      func() string
	submitting atomic.Bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock used for file naming.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNotifier sets the notifier used by Submit.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithStat overrides the file stat used by the size checks.
func WithStat(stat func(string) (os.FileInfo, error)) Option {
	return func(c *Controller) { c.stat = stat }
}

// WithRequestIDs overrides the request id generator.
func WithRequestIDs(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// New builds a controller.
func New(processor Processor, saver Saver, opts ...Option) *Controller {
	c := &Controller{
		processor: processor,
		saver:     saver,
		logger:    logging.NewNop(),
		now:       time.Now,
		stat:      os.Stat,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	return c.submitting.Load()
}

// Validate runs the form pipeline, then the on-disk file checks.
func (c *Controller) Validate(state *form.State) form.Result {
	if r := form.Validate(state); !r.OK() {
		return r
	}
	return CheckFileSizes(state.EPUB(), state.ONIX(), c.stat)
}

// Begin acquires the submitting flag and snapshots the form. It returns
// false without side effects when a submission is already in flight.
func (c *Controller) Begin(state *form.State) (Request, bool) {
	if !c.submitting.CompareAndSwap(false, true) {
		return Request{}, false
	}
	return Request{
		Submission: api.Submission{
			Parts:     buildParts(state),
			RequestID: c.newID(),
		},
		ISBN: state.Get(form.FieldISBN),
	}, true
}

// Send performs the network call and classifies the answer. It is safe to
// run off the UI goroutine.
func (c *Controller) Send(req Request) Outcome {
	log := c.logger.With(slog.String("request_id", req.Submission.RequestID))
	log.Info("submitting files", slog.String("isbn", req.ISBN))

	doc, err := c.processor.Process(req.Submission)
	if err == nil {
		name := form.DeriveFilename(req.ISBN, c.now())
		log.Info("document received", slog.String("filename", name), slog.Int("bytes", len(doc)))
		return Outcome{Kind: KindDownloadReady, Document: doc, Filename: name, RequestID: req.Submission.RequestID}
	}

	var rejected *api.RejectedError
	if errors.As(err, &rejected) {
		log.Warn("submission rejected", slog.Int("status", rejected.Status), slog.Any("errors", rejected.Messages))
		return Outcome{
			Kind:      KindRejected,
			Message:   rejected.Message(),
			Messages:  rejected.Messages,
			RequestID: req.Submission.RequestID,
		}
	}

	reason := "unexpected error"
	var transport *api.TransportError
	if errors.As(err, &transport) {
		reason = transport.Reason
	}
	log.Error("submission failed", slog.Any("error", err))
	return Outcome{
		Kind:      KindTransportFailed,
		Message:   "Submission failed: " + reason,
		RequestID: req.Submission.RequestID,
	}
}

// Finish delivers a successful document through the saver and releases the
// submitting flag on every path.
func (c *Controller) Finish(o Outcome) Outcome {
	defer c.submitting.Store(false)
	if o.Kind != KindDownloadReady {
		return o
	}
	path, err := c.saver.Save(o.Filename, o.Document)
	if err != nil {
		c.logger.Error("save document", slog.String("filename", o.Filename), slog.Any("error", err))
		o.Kind = KindSaveFailed
		o.Message = fmt.Sprintf("Could not save %s", o.Filename)
		return o
	}
	o.SavedPath = path
	return o
}

// Submit runs the whole lifecycle on the calling goroutine: validate,
// acquire, send, deliver, release. Failures go to the notifier.
func (c *Controller) Submit(state *form.State) Outcome {
	if r := c.Validate(state); !r.OK() {
		c.notify(r.Message)
		return Outcome{Kind: KindInvalid, Message: r.Message}
	}
	req, ok := c.Begin(state)
	if !ok {
		c.notify(MsgBusy)
		return Outcome{Kind: KindBusy, Message: MsgBusy}
	}
	defer c.submitting.Store(false)

	o := c.Finish(c.Send(req))
	if !o.OK() {
		c.notify(o.Message)
	}
	return o
}

func (c *Controller) notify(message string) {
	if c.notifier != nil {
		c.notifier.Notify(message)
	}
}

// buildParts carries every form field verbatim in wire order.
func buildParts(state *form.State) []api.Part {
	parts := make([]api.Part, 0, len(form.Fields))
	for _, f := range form.Fields {
		value := state.Get(f.Name)
		if f.Kind == form.KindFile {
			if value == "" {
				continue
			}
			parts = append(parts, api.Part{Name: f.Name, Value: value, File: true})
			continue
		}
		parts = append(parts, api.Part{Name: f.Name, Value: value})
	}
	return parts
}
