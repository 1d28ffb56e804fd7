package service

import (
	"context"
	"sync"
	"sync/atomic"

	"preowned/catalog/internal/cache"
	"preowned/catalog/internal/client"
	"preowned/catalog/internal/domain"
)

// Listing holds the filter/sort/page state of the public catalog view and
// keeps its results consistent under filter churn: every fetch carries a
// sequence number taken at issue time, and a response is dropped when a newer
// fetch has been issued since. Only the newest filter's results are ever
// exposed.
//
// Reads degrade: any failure leaves the view with an empty page and goes to
// the reporter, so the listing stays usable when the backend is not.
type Listing struct {
	catalog  client.CatalogClient
	store    cache.SnapshotStore
	reporter ErrorReporter
	pageSize int

	seq atomic.Uint64

	mu          sync.Mutex
	filter      domain.Filter
	cars        []domain.Car
	total       int
	page        int
	loading     bool
	loadingMore bool
}

func NewListing(catalog client.CatalogClient, store cache.SnapshotStore, reporter ErrorReporter, pageSize int) *Listing {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if reporter == nil {
		reporter = NewLogReporter()
	}
	return &Listing{
		catalog:  catalog,
		store:    store,
		reporter: reporter,
		pageSize: pageSize,
		filter:   domain.NewFilter(),
		page:     1,
	}
}

// SetStatus, SetModel, SetLocation and SetSort mirror the filter dropdowns:
// any change resets to page one and refetches.

func (l *Listing) SetStatus(ctx context.Context, status string) {
	l.mu.Lock()
	l.filter.Status = status
	l.mu.Unlock()
	l.Refresh(ctx)
}

func (l *Listing) SetModel(ctx context.Context, model string) {
	l.mu.Lock()
	l.filter.Model = model
	l.mu.Unlock()
	l.Refresh(ctx)
}

func (l *Listing) SetLocation(ctx context.Context, location string) {
	l.mu.Lock()
	l.filter.Location = location
	l.mu.Unlock()
	l.Refresh(ctx)
}

func (l *Listing) SetSort(ctx context.Context, key domain.SortKey) {
	l.mu.Lock()
	l.filter.Sort = key
	l.mu.Unlock()
	l.Refresh(ctx)
}

// Refresh refetches page one for the current filter. A refresh supersedes
// every fetch issued before it, including pending load-mores.
func (l *Listing) Refresh(ctx context.Context) {
	// The sequence number is taken inside the critical section that raises the
	// loading flag, so any newer request's completion is ordered after this
	// point and is guaranteed to clear the flag this request leaves behind.
	l.mu.Lock()
	seq := l.seq.Add(1)
	l.loading = true
	f := l.filter
	f.Page = 1
	f.PageSize = l.pageSize
	l.mu.Unlock()

	cars, total, err := l.catalog.QueryCars(ctx, f)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq.Load() {
		// Stale; the newer fetch owns the loading flag now.
		return
	}
	l.loading = false
	l.page = 1
	if err != nil {
		l.reporter.ReportError("load cars", err)
		l.cars = nil
		l.total = 0
		return
	}
	l.cars = cars
	l.total = total
}

// LoadMore fetches the next page and appends it. While one next-page request
// is outstanding no second one is issued; the flag is released on every exit
// path so the caller can always ask again.
func (l *Listing) LoadMore(ctx context.Context) {
	l.mu.Lock()
	if l.loadingMore || l.loading || len(l.cars) >= l.total {
		l.mu.Unlock()
		return
	}
	l.loadingMore = true
	f := l.filter
	f.Page = l.page + 1
	f.PageSize = l.pageSize
	seq := l.seq.Load()
	l.mu.Unlock()

	cars, total, err := l.catalog.QueryCars(ctx, f)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadingMore = false
	if seq != l.seq.Load() {
		// Filter changed underneath us; drop the page.
		return
	}
	if err != nil {
		l.reporter.ReportError("load more cars", err)
		return
	}
	l.cars = append(l.cars, cars...)
	l.total = total
	l.page = f.Page
}

func (l *Listing) Cars() []domain.Car {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Car(nil), l.cars...)
}

func (l *Listing) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

func (l *Listing) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cars) < l.total
}

func (l *Listing) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Listing) IsLoadingMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadingMore
}

func (l *Listing) Filter() domain.Filter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// GetCar is the detail-view lookup by registration number.
func (l *Listing) GetCar(ctx context.Context, regNo string) (*domain.Car, error) {
	return l.catalog.GetByRegistration(ctx, regNo)
}

// Models returns the dropdown options for the model filter, prefixed with the
// no-constraint sentinel.
func (l *Listing) Models(ctx context.Context) ([]string, error) {
	names, err := l.store.Models(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{domain.FilterAll}, names...), nil
}

// Locations returns the dropdown options for the location filter.
func (l *Listing) Locations(ctx context.Context) ([]string, error) {
	locations, err := l.store.Locations(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{domain.FilterAll}, locations...), nil
}
