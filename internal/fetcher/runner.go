// Package fetcher retrieves the license key from the configured endpoint and
// prints a human-readable report of each request and response.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/Adda-Baaj/keyfetch/internal/logger"
	"github.com/Adda-Baaj/keyfetch/pkg/httpclient"
	"github.com/google/uuid"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 3
	defaultAgentToken = "chrome113"
)

// Options are the immutable settings of a Runner.
type Options struct {
	Endpoint   string
	Timeout    time.Duration
	MaxRetries int
	AgentToken string
	NoColor    bool
}

// State is the terminal state of a Fetch.
type State int

const (
	StateSuccess State = iota
	StateHandledNetworkError
	StateRetriesExhausted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateHandledNetworkError:
		return "handled_network_error"
	case StateRetriesExhausted:
		return "retries_exhausted"
	default:
		return "cancelled"
	}
}

// Result summarizes a Fetch.
type Result struct {
	State       State
	Attempts    int
	Category    Category
	NetworkKind NetworkErrorKind
	Err         error
}

// Runner performs the bounded fetch loop.
type Runner struct {
	endpoint *url.URL
	opts     Options
	client   httpclient.Client
	report   *reporter
	log      logger.Logger
	now      func() time.Time
	newID    func() string
}

// New validates opts and builds a Runner writing its report to out.
func New(opts Options, client httpclient.Client, out io.Writer, log logger.Logger) (*Runner, error) {
	if client == nil {
		return nil, fmt.Errorf("http client must not be nil")
	}
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.AgentToken == "" {
		opts.AgentToken = defaultAgentToken
	}

	endpoint, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if endpoint.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", opts.Endpoint)
	}

	return &Runner{
		endpoint: endpoint,
		opts:     opts,
		client:   client,
		report:   &reporter{w: out, palette: newPalette(opts.NoColor)},
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Fetch runs attempts until one yields a response or a handled network
// error, or until MaxRetries attempts have failed unexpectedly. Retries are
// immediate. Every outcome is reported as text; none is returned as failure
// to the caller beyond the Result summary.
func (r *Runner) Fetch(ctx context.Context) Result {
	retries := 0
	for {
		attemptID := r.newID()
		r.log.DebugObj("attempt started", "attempt", map[string]any{
			"attempt_id": attemptID,
			"number":     retries + 1,
			"endpoint":   r.endpoint.String(),
		})

		outcome := r.SendRequest(ctx, r.endpoint)

		var err error
		switch outcome.Kind {
		case OutcomeNetworkHandled:
			r.log.WarnObj("attempt ended by network error", "attempt", map[string]any{
				"attempt_id": attemptID,
				"kind":       outcome.NetworkKind.String(),
				"error":      outcome.Err.Error(),
			})
			return Result{
				State:       StateHandledNetworkError,
				Attempts:    retries + 1,
				NetworkKind: outcome.NetworkKind,
				Err:         outcome.Err,
			}
		case OutcomeSuccess:
			cat, classifyErr := r.ClassifyResponse(outcome.Response)
			if classifyErr == nil {
				r.log.InfoObj("response classified", "attempt", map[string]any{
					"attempt_id":  attemptID,
					"status_code": outcome.Response.StatusCode(),
					"category":    cat.String(),
				})
				return Result{State: StateSuccess, Attempts: retries + 1, Category: cat}
			}
			err = classifyErr
		default:
			err = outcome.Err
		}

		retries++
		r.log.WarnObj("attempt failed", "attempt", map[string]any{
			"attempt_id": attemptID,
			"retries":    retries,
			"error":      err.Error(),
		})

		if ctx.Err() != nil {
			return Result{State: StateCancelled, Attempts: retries, Err: err}
		}
		if retries < r.opts.MaxRetries {
			r.report.line(r.report.palette.warning, fmt.Sprintf("retry %d: error: %v", retries, err))
			_ = r.report.flush()
			continue
		}

		r.log.ErrorObj("retries exhausted", "attempt", map[string]any{
			"attempt_id": attemptID,
			"retries":    retries,
			"error":      err.Error(),
		})
		r.report.line(r.report.palette.failure, fmt.Sprintf("max retries exceeded: error: %v", err))
		_ = r.report.flush()
		return Result{State: StateRetriesExhausted, Attempts: retries, Err: err}
	}
}
