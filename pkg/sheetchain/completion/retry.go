package completion

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/chain"
	"github.com/ukaji3/sheetchain-go/internal/logger"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// RetryOptions configures WithRetry.
type RetryOptions struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries int
	// BackOff creates the backoff policy of one call. Defaults to exponential backoff.
	BackOff func() backoff.BackOff
	Log     *logger.Logger
}

type retryingClient struct {
	next    chain.Completer
	tries   uint
	backOff func() backoff.BackOff
	log     *logger.Logger
}

// WithRetry wraps next so that transport failures and 5xx responses are retried
// with bounded exponential backoff. MaxRetries <= 0 returns next unchanged.
func WithRetry(next chain.Completer, opts RetryOptions) chain.Completer {
	if opts.MaxRetries <= 0 {
		return next
	}
	bo := opts.BackOff
	if bo == nil {
		bo = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 10 * time.Second
			return b
		}
	}
	return &retryingClient{
		next:    next,
		tries:   uint(opts.MaxRetries) + 1,
		backOff: bo,
		log:     logger.OrNop(opts.Log),
	}
}

func (c *retryingClient) Complete(ctx context.Context, req models.GenerationRequest) (string, error) {
	attempt := 0
	text, err := backoff.Retry(ctx, func() (string, error) {
		attempt++
		text, err := c.next.Complete(ctx, req)
		if err == nil {
			return text, nil
		}
		var cerr *Error
		if errors.As(err, &cerr) && cerr.Retryable() {
			return "", err
		}
		return "", backoff.Permanent(err)
	},
		backoff.WithBackOff(c.backOff()),
		backoff.WithMaxTries(c.tries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.Warn("Completion retrying", "attempt", attempt, "max_tries", c.tries, "sleep", next.String(), "error", err.Error())
		}),
	)
	if err != nil {
		var cerr *Error
		if !errors.As(err, &cerr) {
			// backoff reports context expiry on its own
			return "", &Error{Kind: KindTransport, Err: err}
		}
		return "", err
	}
	return text, nil
}
