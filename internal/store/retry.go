package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/resilience"
)

// RetryReader retries transient ListRecords failures before they surface
// as a FetchError.
type RetryReader struct {
	Reader
	cfg resilience.RetryConfig
}

// WithRetry wraps r so each record-set read is retried per cfg.
func WithRetry(r Reader, cfg resilience.RetryConfig) *RetryReader {
	return &RetryReader{Reader: r, cfg: cfg}
}

// ListRecords implements Reader.
func (rr *RetryReader) ListRecords(ctx context.Context, ecosystemID string, kind Kind) ([]Record, error) {
	cfg := rr.cfg
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger("store: list records",
			zap.String("ecosystem_id", ecosystemID),
			zap.String("kind", string(kind)),
		)
	}
	return resilience.Do(ctx, cfg, func(ctx context.Context) ([]Record, error) {
		return rr.Reader.ListRecords(ctx, ecosystemID, kind)
	})
}
