package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"preowned/catalog/internal/config"
	"preowned/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// EnquiryClient submits lead-capture forms to the backend. Submission is not
// idempotent on the server side and the client never retries or deduplicates;
// guarding against double-clicks is the caller's job.
type EnquiryClient interface {
	Submit(ctx context.Context, form domain.Enquiry) (json.RawMessage, error)
}

type enquiryClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
}

func NewEnquiryClient(cfg config.APIConfig) EnquiryClient {
	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &enquiryClient{
		rl:      ratelimit.New(rps),
		baseURL: cfg.BaseURL + cfg.Prefix,
		// A retried POST could create duplicate leads, so retries stay off.
		httpClient: newHTTPClient(cfg, 0),
	}
}

// enquiryRequest is the wire shape of a submission. Field names differ from
// the caller-facing ones; CarID is left out entirely when the lead is not tied
// to a car.
type enquiryRequest struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	State            string `json:"state"`
	PDPAConsent      bool   `json:"pdpaConsent"`
	MarketingConsent bool   `json:"marketingConsent"`
	CarID            *int64 `json:"carId,omitempty"`
}

func (c *enquiryClient) Submit(ctx context.Context, form domain.Enquiry) (json.RawMessage, error) {
	// Consent is a contract precondition, not a UI nicety. Nothing goes on
	// the wire without it.
	if !form.PDPAConsent {
		return nil, &domain.SubmissionError{Message: "PDPA consent is required", Err: domain.ErrConsentRequired}
	}
	if err := form.Validate(); err != nil {
		return nil, &domain.SubmissionError{Err: err}
	}

	body := enquiryRequest{
		FullName:         form.Name,
		Email:            form.Email,
		Phone:            form.Phone,
		State:            form.State,
		PDPAConsent:      form.PDPAConsent,
		MarketingConsent: form.MarketingConsent,
		CarID:            form.CarID,
	}

	c.rl.Take()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.baseURL + "/enquiry")
	if err != nil {
		return nil, &domain.SubmissionError{Err: fmt.Errorf("request failed: %w", err)}
	}

	var env envelope[json.RawMessage]
	if uerr := json.Unmarshal([]byte(resp.String()), &env); uerr != nil {
		if resp.IsError() {
			return nil, &domain.SubmissionError{Err: fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())}
		}
		return nil, &domain.SubmissionError{Err: fmt.Errorf("decode response: %w", uerr)}
	}
	if resp.IsError() || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "failed to submit enquiry"
		}
		return nil, &domain.SubmissionError{Message: msg, Err: errors.New("backend rejected enquiry")}
	}

	log.Debugf("Enquiry submitted for %s", form.Email)
	return env.Data, nil
}
