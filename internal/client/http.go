package client

import (
	"time"

	"preowned/catalog/internal/config"

	"resty.dev/v3"
)

// envelope is the wrapper every backend response uses.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

func newHTTPClient(cfg config.APIConfig, retryCount int) *resty.Client {
	return resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(retryCount).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}
