// Package completion sends prompts to the Anthropic Messages API.
package completion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ukaji3/sheetchain-go/internal/logger"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// Options configures an AnthropicClient.
type Options struct {
	// BaseURL overrides the API endpoint.
	BaseURL string
	// Timeout bounds each call; zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the transport.
	HTTPClient *http.Client
	Log        *logger.Logger
}

// AnthropicClient implements chain.Completer with a single user message per call.
// It never retries; see WithRetry.
type AnthropicClient struct {
	client  anthropic.Client
	timeout time.Duration
	log     *logger.Logger
}

// NewAnthropicClient creates a client authenticating with apiKey.
func NewAnthropicClient(apiKey string, opts Options) (*AnthropicClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("missing API key")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(strings.TrimRight(opts.BaseURL, "/")+"/"))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &AnthropicClient{
		client:  anthropic.NewClient(reqOpts...),
		timeout: opts.Timeout,
		log:     logger.OrNop(opts.Log).With("service", "AnthropicClient"),
	}, nil
}

// Complete sends req as one user message and returns the first text block of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, req models.GenerationRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	c.log.Debug("Completion request", "model", req.ModelID, "max_tokens", req.MaxTokens, "prompt_len", len(req.PromptText))

	var x exchange
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.ModelID),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.PromptText)),
		},
	}, option.WithMiddleware(x.record))
	if err != nil {
		cerr := classify(err, &x)
		c.log.Warn("Completion failed", "duration", time.Since(start), "kind", string(cerr.Kind), "status", cerr.StatusCode)
		return "", cerr
	}
	c.log.Debug("Completion received", "duration", time.Since(start), "stop_reason", string(msg.StopReason))

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &Error{Kind: KindMalformedResponse, Err: fmt.Errorf("no text content in response")}
}

// exchange records the status and, for unsuccessful responses, the raw body
// of the last HTTP exchange of a call.
type exchange struct {
	status int
	body   []byte
}

func (x *exchange) record(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	res, err := next(req)
	if err != nil || res == nil {
		return res, err
	}
	x.status = res.StatusCode
	if !success(res.StatusCode) {
		body, rerr := io.ReadAll(res.Body)
		res.Body.Close()
		if rerr != nil {
			return nil, rerr
		}
		x.body = body
		res.Body = io.NopCloser(bytes.NewReader(body))
	}
	return res, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func classify(err error, x *exchange) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTransport, Err: err}
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		body := apiErr.RawJSON()
		if body == "" {
			body = string(x.body)
		}
		return &Error{
			Kind:       KindHTTP,
			StatusCode: apiErr.StatusCode,
			Body:       body,
			Err:        err,
		}
	}

	switch {
	case x.status == 0:
		return &Error{Kind: KindTransport, Err: err}
	case success(x.status):
		// The response arrived but could not be decoded
		return &Error{Kind: KindMalformedResponse, StatusCode: x.status, Err: err}
	default:
		return &Error{Kind: KindHTTP, StatusCode: x.status, Body: string(x.body), Err: err}
	}
}
