package shortener

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultProbeTimeout bounds a single reachability probe.
const DefaultProbeTimeout = 5 * time.Second

const (
	probeUserAgent  = "url-shortener-probe/1.0"
	probeDrainLimit = 64 << 10
	schemeHTTP      = "http"
	schemeHTTPS     = "https"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Reachability is the outcome of a probe. A zero Cause means a response was received.
type Reachability struct {
	Cause error
}

// Reachable reports whether the probe received any response at all.
func (r Reachability) Reachable() bool { return r.Cause == nil }

// Validator gates which URLs may be shortened.
type Validator struct {
	client  Doer
	timeout time.Duration
}

// NewValidator creates a validator that probes through client.
// A non-positive timeout falls back to DefaultProbeTimeout.
func NewValidator(client Doer, timeout time.Duration) *Validator {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	return &Validator{
		client:  client,
		timeout: timeout,
	}
}

// IsWellFormed reports whether candidate is an absolute http or https URL with a host.
func IsWellFormed(candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}

	if !u.IsAbs() || (u.Scheme != schemeHTTP && u.Scheme != schemeHTTPS) {
		return false
	}

	return u.Host != ""
}

// Probe issues one GET against candidate. Any response, whatever its status,
// counts as reachable; transport failures and timeouts do not.
func (v *Validator) Probe(ctx context.Context, candidate string) Reachability {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
	if err != nil {
		return Reachability{Cause: err}
	}

	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return Reachability{Cause: err}
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, probeDrainLimit))
	_ = resp.Body.Close()

	return Reachability{}
}

// Validate runs the well-formedness check and then the probe.
func (v *Validator) Validate(ctx context.Context, candidate string) error {
	if !IsWellFormed(candidate) {
		return ErrMalformedURL
	}

	if r := v.Probe(ctx, candidate); !r.Reachable() {
		return &UnreachableError{URL: candidate, Cause: r.Cause}
	}

	return nil
}
