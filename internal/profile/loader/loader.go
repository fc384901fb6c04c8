package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-userform/pkg/profile"
)

// Loader implements profile.Loader over HTTP.
type Loader struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ profile.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options profile.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	} else {
		httpClient = &http.Client{Timeout: timeout}
	}

	base := strings.TrimRight(options.BaseURL, "/")
	if base == "" {
		base = profile.DefaultBaseURL
	}

	return &Loader{
		baseURL: base,
		http:    httpClient,
		timeout: timeout,
	}
}

// FetchProfile performs GET {base}/{id} and decodes the JSON body. String
// fields are sanitised before they are returned. A 404 wraps
// profile.ErrNotFound so callers can tell a missing record from an outage.
func (l *Loader) FetchProfile(ctx context.Context, id string) (profile.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profile.Record{}, l.fail(id, profile.OpRequest, errors.New("id is required"))
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return profile.Record{}, l.fail(id, profile.OpRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return profile.Record{}, l.fail(id, profile.OpRequest, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return profile.Record{}, l.fail(id, profile.OpStatus, profile.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return profile.Record{}, l.fail(id, profile.OpStatus, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var rec profile.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return profile.Record{}, l.fail(id, profile.OpDecode, err)
	}
	return sanitizeRecord(rec), nil
}

func (l *Loader) fail(id, op string, err error) *profile.LoadError {
	return &profile.LoadError{ID: id, Op: op, Err: err}
}
