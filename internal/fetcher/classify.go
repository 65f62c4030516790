package fetcher

import (
	"errors"
	"fmt"

	"github.com/Adda-Baaj/keyfetch/pkg/httpclient"
)

// ErrNoResponse is returned when there is no response to classify.
var ErrNoResponse = errors.New("no response to classify")

// Category is the status-code class a response falls into.
type Category int

const (
	CategoryNone Category = iota
	CategorySuccess
	CategoryRedirect
	CategoryClientError
	CategoryServerError
	CategoryUnknown
)

func (c Category) String() string {
	switch c {
	case CategorySuccess:
		return "success"
	case CategoryRedirect:
		return "redirect"
	case CategoryClientError:
		return "client_error"
	case CategoryServerError:
		return "server_error"
	case CategoryUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// CategoryFor buckets a status code by its class.
func CategoryFor(code int) Category {
	switch {
	case code >= 200 && code <= 299:
		return CategorySuccess
	case code >= 300 && code <= 399:
		return CategoryRedirect
	case code >= 400 && code <= 499:
		return CategoryClientError
	case code >= 500 && code <= 599:
		return CategoryServerError
	default:
		return CategoryUnknown
	}
}

// ClassifyResponse logs the response block and prints the category line.
// A nil response prints nothing and yields ErrNoResponse. Write failures are
// returned so the retry loop can count them.
func (r *Runner) ClassifyResponse(resp httpclient.Response) (Category, error) {
	if resp == nil {
		return CategoryNone, ErrNoResponse
	}

	code := resp.StatusCode()
	message := resp.Status()
	body := resp.Body()

	r.report.response(code, message, resp.Header(), body)

	cat := CategoryFor(code)
	p := r.report.palette
	switch cat {
	case CategorySuccess:
		r.report.line(p.success, "license key is: "+string(body))
	case CategoryRedirect:
		r.report.line(p.warning, "redirect error: "+resp.Header().Get("Location"))
	case CategoryClientError:
		r.report.line(p.failure, fmt.Sprintf("client error: %d %s", code, message))
	case CategoryServerError:
		r.report.line(p.failure, fmt.Sprintf("server error: %d %s", code, message))
	default:
		r.report.line(p.failure, fmt.Sprintf("unknown error response: %d %s", code, message))
	}

	if err := r.report.flush(); err != nil {
		return cat, fmt.Errorf("write report: %w", err)
	}
	return cat, nil
}
