package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zhouzirui/students/backend/internal/model/student"
)

// DefaultURL is the public user directory the students are sourced from.
const DefaultURL = "https://jsonplaceholder.typicode.com/users"

const maxResponseBodySize = 4 << 20 // 4MB

const (
	defaultMaxIdleConns    = 4
	defaultIdleConnTimeout = 30 * time.Second
)

var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamMalformed   = errors.New("upstream response malformed")
)

// record is the subset of an upstream user that is consumed.
type record struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// Client fetches the student list from the upstream user directory.
type Client struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

// NewClient returns a Client for url. The timeout bounds the whole request,
// including reading the body.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			// per-request timeout is applied via context
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    defaultMaxIdleConns,
				IdleConnTimeout: defaultIdleConnTimeout,
			},
		},
		url:     url,
		timeout: timeout,
	}
}

// URL returns the endpoint the client reads from.
func (c *Client) URL() string {
	return c.url
}

// FetchStudents performs a single GET and maps every upstream user into a
// student, keeping upstream order. Failures are never retried.
func (c *Client) FetchStudents(ctx context.Context) ([]student.Student, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)
	}
	if len(body) > maxResponseBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrUpstreamMalformed, maxResponseBodySize)
	}

	return decodeStudents(body)
}

// Close releases idle connections. The client stays usable.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}

func decodeStudents(body []byte) ([]student.Student, error) {
	var records []*record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrUpstreamMalformed)
	}

	students := make([]student.Student, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("%w: record %d is null", ErrUpstreamMalformed, i)
		}
		if rec.ID == nil {
			return nil, fmt.Errorf("%w: record %d has no id", ErrUpstreamMalformed, i)
		}
		if rec.Name == nil {
			return nil, fmt.Errorf("%w: record %d has no name", ErrUpstreamMalformed, i)
		}
		students = append(students, student.Student{
			MatriculationNumber: *rec.ID,
			Name:                *rec.Name,
		})
	}
	return students, nil
}
