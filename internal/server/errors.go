package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/toppers/mocktest/internal/flow"
	"github.com/toppers/mocktest/internal/llm"
	"github.com/toppers/mocktest/internal/mcqtest"
)

// statusFor maps a flow error to its HTTP status.
func statusFor(err error) int {
	var (
		badBody     *errBadRequest
		invalidIn   *flow.ErrInvalidInput
		rateLimit   *llm.ErrRateLimit
		noOutput    *llm.ErrNoOutput
		invalidResp *llm.ErrInvalidResponse
		truncated   *llm.ErrMaxTokensExceeded
		rejected    *mcqtest.ValidationError
		unavailable *llm.ErrProviderUnavailable
	)

	switch {
	case errors.As(err, &badBody), errors.As(err, &invalidIn):
		return http.StatusBadRequest
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests
	case errors.As(err, &noOutput), errors.As(err, &invalidResp),
		errors.As(err, &truncated), errors.As(err, &rejected):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
