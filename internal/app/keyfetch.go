package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Adda-Baaj/keyfetch/internal/config"
	"github.com/Adda-Baaj/keyfetch/internal/fetcher"
	"github.com/Adda-Baaj/keyfetch/internal/logger"
	"github.com/Adda-Baaj/keyfetch/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

// KeyFetch wires the configured HTTP client into a fetch runner.
type KeyFetch struct {
	cfg    *config.Config
	runner *fetcher.Runner
	log    logger.Logger
}

// NewKeyFetch builds the runtime from config. A nil out writes the report to stdout.
// restyLog, when set, receives resty's internal warnings.
func NewKeyFetch(cfg *config.Config, log logger.Logger, restyLog resty.Logger, out io.Writer) (*KeyFetch, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if out == nil {
		out = os.Stdout
	}

	var opts []httpclient.Option
	if restyLog != nil {
		opts = append(opts, httpclient.WithLogger(restyLog))
	}
	client := httpclient.NewRestyClient(cfg.FetchTimeout, opts...)

	runner, err := fetcher.New(fetcher.Options{
		Endpoint:   cfg.EndpointURL,
		Timeout:    cfg.FetchTimeout,
		MaxRetries: cfg.MaxRetries,
		AgentToken: cfg.AgentToken,
		NoColor:    cfg.NoColor,
	}, client, out, log)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	log.InfoObj("fetcher initialized", "fetcher_config", map[string]any{
		"endpoint":        cfg.EndpointURL,
		"timeout_seconds": int(cfg.FetchTimeout.Seconds()),
		"max_retries":     cfg.MaxRetries,
	})

	return &KeyFetch{cfg: cfg, runner: runner, log: log}, nil
}

// Run performs one fetch. The outcome is reported on the output writer and
// in the logs; it is never turned into an error.
func (k *KeyFetch) Run(ctx context.Context) fetcher.Result {
	res := k.runner.Fetch(ctx)

	summary := map[string]any{
		"state":    res.State.String(),
		"attempts": res.Attempts,
	}
	if res.State == fetcher.StateSuccess {
		summary["category"] = res.Category.String()
	}
	if res.NetworkKind != fetcher.NetNone {
		summary["network_error"] = res.NetworkKind.String()
	}
	if res.Err != nil {
		summary["error"] = res.Err.Error()
	}
	k.log.InfoObj("fetch finished", "fetch_result", summary)

	return res
}
