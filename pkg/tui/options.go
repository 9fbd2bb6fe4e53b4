package tui

import (
	"net/http"

	"github.com/goliatone/go-regflow/pkg/submit"
)

const (
	defaultPageSize = 6
	maxPageSize     = 20
)

// Option configures the TUI runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithHTTPClient opts into remote option fetching for fields that declare an
// options endpoint. When omitted, the runner stays offline.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Runner) {
		r.httpClient = client
	}
}

// WithGatewayOptions forwards options to the submission gateway.
func WithGatewayOptions(options ...submit.Option) Option {
	return func(r *Runner) {
		r.gatewayOptions = append(r.gatewayOptions, options...)
	}
}

// WithPageSize bounds the number of select options shown per page. Values
// outside [1, 20] are clamped.
func WithPageSize(size int) Option {
	return func(r *Runner) {
		if size < 1 {
			size = 1
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		r.pageSize = size
	}
}

// WithoutConfirmation skips the final yes/no prompt before submission.
func WithoutConfirmation() Option {
	return func(r *Runner) {
		r.skipConfirm = true
	}
}
