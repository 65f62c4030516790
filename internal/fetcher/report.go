package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/fatih/color"
)

const (
	requestMarker  = "=== request start ==="
	responseMarker = "=== response received ==="
	closingMarker  = "======================"

	bodyPreviewChars = 200
)

type palette struct {
	success *color.Color
	warning *color.Color
	failure *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}
	if noColor {
		p.success.DisableColor()
		p.warning.DisableColor()
		p.failure.DisableColor()
	}
	return p
}

// reporter writes the human-readable report. It remembers the first write
// error so callers can check once per block.
type reporter struct {
	w       io.Writer
	palette palette
	err     error
}

func (r *reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *reporter) line(c *color.Color, msg string) {
	if r.err != nil {
		return
	}
	if c == nil {
		_, r.err = fmt.Fprintln(r.w, msg)
		return
	}
	_, r.err = c.Fprintln(r.w, msg)
}

// flush returns and clears the pending write error.
func (r *reporter) flush() error {
	err := r.err
	r.err = nil
	return err
}

func (r *reporter) request(method, uri, ident string) {
	r.printf("%s\n", requestMarker)
	r.printf("Method: %s\n", method)
	r.printf("URI: %s\n", uri)
	r.printf("%s: %s\n", IdentHeader, ident)
	r.printf("%s\n", closingMarker)
}

func (r *reporter) response(code int, message string, header http.Header, body []byte) {
	r.printf("%s\n", responseMarker)
	r.printf("Code: %d\n", code)
	r.printf("Message: %s\n", message)
	r.printf("Headers: %s\n", formatHeaders(header))
	r.printf("Body: %s\n", bodyPreview(body))
	r.printf("%s\n", closingMarker)
}

// formatHeaders renders headers with lower-cased keys in sorted order.
func formatHeaders(h http.Header) string {
	if len(h) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(h))
	lowered := make(map[string][]string, len(h))
	for k, v := range h {
		lk := strings.ToLower(k)
		if _, ok := lowered[lk]; !ok {
			keys = append(keys, lk)
		}
		lowered[lk] = append(lowered[lk], v...)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: [%s]", k, strings.Join(lowered[k], ", "))
	}
	b.WriteByte('}')
	return b.String()
}

func bodyPreview(body []byte) string {
	runes := []rune(string(body))
	if len(runes) > bodyPreviewChars {
		runes = runes[:bodyPreviewChars]
	}
	return string(runes)
}
