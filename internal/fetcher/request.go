package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"github.com/Adda-Baaj/keyfetch/pkg/httpclient"
)

// IdentHeader carries the synthetic client identification.
const IdentHeader = "User-Agent"

// OutcomeKind tags the result of a single request.
type OutcomeKind int

const (
	// OutcomeSuccess means a response arrived, whatever its status code.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeNetworkHandled means a recognized network error was reported and the attempt ends.
	OutcomeNetworkHandled
	// OutcomeUnhandled means an unexpected error that counts against the retry budget.
	OutcomeUnhandled
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeNetworkHandled:
		return "network_handled"
	default:
		return "unhandled"
	}
}

// Outcome is the tagged result of SendRequest. Response is set only for
// OutcomeSuccess; Err is set for the other two kinds.
type Outcome struct {
	Kind        OutcomeKind
	Response    httpclient.Response
	NetworkKind NetworkErrorKind
	Err         error
}

// Identification builds the identification header value for the given instant.
func Identification(token string, now time.Time) string {
	return fmt.Sprintf("%s; %s; %s/%s; time=%d", token, runtime.Version(), runtime.GOOS, runtime.GOARCH, now.Unix())
}

// SendRequest performs one GET against target within the configured timeout.
// Handled network errors are printed and swallowed here; anything else is
// returned as OutcomeUnhandled for the retry loop to count.
func (r *Runner) SendRequest(ctx context.Context, target *url.URL) Outcome {
	if target == nil {
		return Outcome{Kind: OutcomeUnhandled, Err: fmt.Errorf("request target is nil")}
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return Outcome{Kind: OutcomeUnhandled, Err: fmt.Errorf("unsupported scheme %q", target.Scheme)}
	}

	ident := Identification(r.opts.AgentToken, r.now())
	r.report.request(http.MethodGet, target.String(), ident)
	if err := r.report.flush(); err != nil {
		return Outcome{Kind: OutcomeUnhandled, Err: fmt.Errorf("write report: %w", err)}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	resp, err := r.client.Get(attemptCtx, target.String(), map[string]string{IdentHeader: ident})
	if err != nil {
		// a cancelled parent is never a handled timeout
		if ctx.Err() != nil {
			return Outcome{Kind: OutcomeUnhandled, Err: fmt.Errorf("request aborted: %w", ctx.Err())}
		}
		if kind, ok := classifyNetworkError(err); ok {
			r.report.line(r.report.palette.failure, networkMessage(kind, err))
			_ = r.report.flush()
			return Outcome{Kind: OutcomeNetworkHandled, NetworkKind: kind, Err: err}
		}
		return Outcome{Kind: OutcomeUnhandled, Err: err}
	}
	if resp == nil {
		return Outcome{Kind: OutcomeUnhandled, Err: ErrNoResponse}
	}

	return Outcome{Kind: OutcomeSuccess, Response: resp}
}
