package httpclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// Option customizes the underlying resty client.
type Option func(*options)

type options struct {
	logger  resty.Logger
	rootCAs *x509.CertPool
}

// WithLogger routes resty's internal warnings to the given logger.
func WithLogger(l resty.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRootCAs replaces the system trust store used to verify servers.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(o *options) { o.rootCAs = pool }
}

// NewRestyClient creates a new RestyClient with the specified timeout covering
// connect, TLS handshake, and body read.
func NewRestyClient(timeout time.Duration, opts ...Option) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout, opts...)}
}

// newRestyBaseClient creates a resty.Client that never retries on its own,
// never follows redirects, and opens a fresh connection per request.
func newRestyBaseClient(timeout time.Duration, opts ...Option) *resty.Client {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true
	transport.TLSClientConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    o.rootCAs,
	}

	c := resty.New()
	c.SetTransport(transport)
	c.SetTimeout(timeout)
	c.SetRetryCount(0)
	c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	if o.logger != nil {
		c.SetLogger(o.logger)
	}
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }

func (r *restyResponseAdapter) Status() string {
	return ReasonPhrase(r.resp.StatusCode(), r.resp.Status())
}

// ReasonPhrase strips the leading status code from a status line such as
// "404 Not Found". It falls back to the standard text for the code.
func ReasonPhrase(code int, status string) string {
	status = strings.TrimSpace(status)
	prefix := strconv.Itoa(code)
	if rest, ok := strings.CutPrefix(status, prefix); ok {
		if rest = strings.TrimSpace(rest); rest != "" {
			return rest
		}
	} else if status != "" {
		return status
	}
	return http.StatusText(code)
}
