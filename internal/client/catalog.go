package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"preowned/catalog/internal/config"
	"preowned/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// CatalogClient is the single point of access to catalog data. It hides the
// backend's query-parameter contract and wire-shape quirks from callers.
// Writes are server-confirmed: they return only after the backend has accepted
// the change.
type CatalogClient interface {
	QueryCars(ctx context.Context, filter domain.Filter) ([]domain.Car, int, error)
	GetByRegistration(ctx context.Context, regNo string) (*domain.Car, error)
	CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error)
	UpdateCar(ctx context.Context, car *domain.Car) (*domain.Car, error)
	DeleteCar(ctx context.Context, regNo string) error
}

type catalogClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
}

func NewCatalogClient(cfg config.APIConfig) CatalogClient {
	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &catalogClient{
		rl:         ratelimit.New(rps),
		baseURL:    cfg.BaseURL + cfg.Prefix,
		httpClient: newHTTPClient(cfg, cfg.MaxRetries),
	}
}

// carPage is the paged payload inside the list envelope. Total is the server's
// candidate count across all pages, not the page length.
type carPage struct {
	Data  []domain.Car `json:"data"`
	Total int          `json:"total"`
}

func (c *catalogClient) QueryCars(ctx context.Context, filter domain.Filter) ([]domain.Car, int, error) {
	params := map[string]string{}
	if filter.Status != "" && filter.Status != domain.FilterAll {
		params["status"] = filter.Status
	}
	if filter.Model != "" && filter.Model != domain.FilterAll {
		params["name"] = filter.Model
	}
	if filter.Location != "" && filter.Location != domain.FilterAll {
		params["location"] = filter.Location
	}
	if field, direction, ok := filter.Sort.Params(); ok {
		params["sortBy"] = field
		params["sortOrder"] = direction
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.PageSize
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	params["page"] = strconv.Itoa(page)
	params["limit"] = strconv.Itoa(limit)

	c.rl.Take()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(c.baseURL + "/cars")
	if err != nil {
		return nil, 0, &domain.FetchError{Op: "query cars", Err: fmt.Errorf("request failed: %w", err)}
	}
	if resp.IsError() {
		return nil, 0, &domain.FetchError{Op: "query cars", Err: fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())}
	}

	var env envelope[carPage]
	if err := json.Unmarshal([]byte(resp.String()), &env); err != nil {
		return nil, 0, &domain.FetchError{Op: "query cars", Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Success {
		return nil, 0, &domain.FetchError{Op: "query cars", Message: env.Message, Err: errors.New("backend reported failure")}
	}

	log.Debugf("Fetched page %d with %d cars (total %d)", page, len(env.Data.Data), env.Data.Total)
	return env.Data.Data, env.Data.Total, nil
}

// GetByRegistration looks a car up by its business key. The registration
// string goes into the path literally; validation and escaping are the
// caller's job. A miss is domain.ErrCarNotFound, never a FetchError.
func (c *catalogClient) GetByRegistration(ctx context.Context, regNo string) (*domain.Car, error) {
	c.rl.Take()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/cars/regNo/%s", c.baseURL, regNo))
	if err != nil {
		return nil, &domain.FetchError{Op: "get car", Err: fmt.Errorf("request failed: %w", err)}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrCarNotFound
	}
	if resp.IsError() {
		return nil, &domain.FetchError{Op: "get car", Err: fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())}
	}

	var env envelope[domain.Car]
	if err := json.Unmarshal([]byte(resp.String()), &env); err != nil {
		return nil, &domain.FetchError{Op: "get car", Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Success {
		return nil, &domain.FetchError{Op: "get car", Message: env.Message, Err: errors.New("backend reported failure")}
	}
	if env.Data.RegistrationNo == "" {
		return nil, domain.ErrCarNotFound
	}

	return &env.Data, nil
}

func (c *catalogClient) CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	c.rl.Take()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(car).
		Post(c.baseURL + "/cars")
	if err != nil {
		return nil, &domain.FetchError{Op: "create car", Err: fmt.Errorf("request failed: %w", err)}
	}
	return c.decodeCar("create car", resp)
}

func (c *catalogClient) UpdateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	c.rl.Take()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(car).
		Put(fmt.Sprintf("%s/cars/regNo/%s", c.baseURL, car.RegistrationNo))
	if err != nil {
		return nil, &domain.FetchError{Op: "update car", Err: fmt.Errorf("request failed: %w", err)}
	}
	return c.decodeCar("update car", resp)
}

func (c *catalogClient) DeleteCar(ctx context.Context, regNo string) error {
	c.rl.Take()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("%s/cars/regNo/%s", c.baseURL, regNo))
	if err != nil {
		return &domain.FetchError{Op: "delete car", Err: fmt.Errorf("request failed: %w", err)}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return domain.ErrCarNotFound
	}
	if resp.IsError() {
		return &domain.FetchError{Op: "delete car", Err: fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())}
	}

	var env envelope[json.RawMessage]
	if err := json.Unmarshal([]byte(resp.String()), &env); err != nil {
		return &domain.FetchError{Op: "delete car", Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Success {
		return &domain.FetchError{Op: "delete car", Message: env.Message, Err: errors.New("backend reported failure")}
	}
	return nil
}

func (c *catalogClient) decodeCar(op string, resp *resty.Response) (*domain.Car, error) {
	if resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrCarNotFound
	}
	if resp.IsError() {
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())}
	}

	var env envelope[domain.Car]
	if err := json.Unmarshal([]byte(resp.String()), &env); err != nil {
		return nil, &domain.FetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Success {
		return nil, &domain.FetchError{Op: op, Message: env.Message, Err: errors.New("backend reported failure")}
	}
	return &env.Data, nil
}
