package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client wraps HTTP calls to the AccessONIX processing service.
type Client struct {
	baseURL     string
	processPath string
	httpClient  *http.Client
}

// NewClient creates a new API client. A zero or missing timeout leaves
// requests unbounded.
func NewClient(baseURL string, timeout ...time.Duration) *Client {
	var httpTimeout time.Duration
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		processPath: DefaultProcessPath,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// SetProcessPath changes the path of the processing endpoint.
func (c *Client) SetProcessPath(path string) {
	if path == "" {
		return
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	c.processPath = path
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	clone := NewClient(c.baseURL, timeout)
	clone.processPath = c.processPath
	return clone
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProcessURL returns the full processing endpoint URL.
func (c *Client) ProcessURL() string {
	return c.baseURL + c.processPath
}

// Part is one multipart field. For file parts Value is the local path.
type Part struct {
	Name  string
	Value string
	File  bool
}

// Submission is one processing request.
type Submission struct {
	Parts     []Part
	RequestID string
}

// Process uploads the submission and returns the generated document.
// Non-2xx responses come back as *RejectedError when the body carries
// "error" or "errors", and as *TransportError otherwise.
func (c *Client) Process(sub Submission) ([]byte, error) {
	body, contentType, err := encodeMultipart(sub.Parts)
	if err != nil {
		return nil, &TransportError{Reason: "could not prepare the upload", Err: err}
	}

	req, err := http.NewRequest(http.MethodPost, c.ProcessURL(), body)
	if err != nil {
		return nil, &TransportError{Reason: "could not build request", Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/xml, application/json")
	if sub.RequestID != "" {
		req.Header.Set("X-Request-ID", sub.RequestID)
	}

	respBody, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		if msgs, ok := extractAPIErrorBody(respBody); ok {
			return nil, &RejectedError{Status: status, Messages: msgs}
		}
		reason := fmt.Sprintf("unexpected response (HTTP %d)", status)
		if page := summarizeErrorPage(respBody); page != "" {
			reason += ": " + page
		}
		return nil, &TransportError{Reason: reason}
	}
	if len(respBody) == 0 {
		return nil, &TransportError{Reason: "server returned an empty document"}
	}
	return respBody, nil
}

// do executes a request and returns the raw response body and status.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Reason: transportReason(err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Reason: "could not read the response", Err: err}
	}
	return respBody, resp.StatusCode, nil
}

func encodeMultipart(parts []Part) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		if !p.File {
			if err := w.WriteField(p.Name, p.Value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", p.Name, err)
			}
			continue
		}
		if err := writeFilePart(w, p); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, p Part) error {
	f, err := os.Open(p.Value)
	if err != nil {
		return fmt.Errorf("open %s: %w", p.Name, err)
	}
	defer f.Close()

	dst, err := w.CreateFormFile(p.Name, filepath.Base(p.Value))
	if err != nil {
		return fmt.Errorf("create part %s: %w", p.Name, err)
	}
	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("copy %s: %w", p.Name, err)
	}
	return nil
}

func transportReason(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "the request timed out"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "could not reach the processing service"
	}
	return "the request failed"
}
