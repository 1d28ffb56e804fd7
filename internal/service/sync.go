package service

import (
	"context"
	"fmt"
	"sync"

	"preowned/catalog/internal/cache"
	"preowned/catalog/internal/client"
	"preowned/catalog/internal/domain"
	"preowned/catalog/internal/repository"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// Sync warms the snapshot cache with the full unfiltered catalog and, when an
// archive repository is wired, writes every record through to it. The first
// page reveals the total; the rest are fetched concurrently.
type Sync struct {
	catalog    client.CatalogClient
	store      cache.SnapshotStore
	repository repository.CarRepository
	pageSize   int
	maxWorkers int
}

func NewSync(
	catalog client.CatalogClient,
	store cache.SnapshotStore,
	repository repository.CarRepository,
	pageSize int,
	maxWorkers int,
) *Sync {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	return &Sync{
		catalog:    catalog,
		store:      store,
		repository: repository,
		pageSize:   pageSize,
		maxWorkers: maxWorkers,
	}
}

func (s *Sync) Run(ctx context.Context) error {
	filter := domain.NewFilter()
	filter.PageSize = s.pageSize

	firstPage, total, err := s.catalog.QueryCars(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to fetch first page: %w", err)
	}

	totalPages := (total + s.pageSize - 1) / s.pageSize
	pages := make([][]domain.Car, totalPages+1)
	if totalPages > 0 {
		pages[1] = firstPage
	}

	if totalPages > 1 {
		errGroup := new(errgroup.Group)
		semaphore := make(chan struct{}, s.maxWorkers)

		for pageNum := 2; pageNum <= totalPages; pageNum++ {
			errGroup.Go(func() error {
				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				f := filter
				f.Page = pageNum
				cars, _, err := s.catalog.QueryCars(ctx, f)
				if err != nil {
					return fmt.Errorf("failed to fetch page %d: %w", pageNum, err)
				}
				pages[pageNum] = cars
				return nil
			})
		}

		if err := errGroup.Wait(); err != nil {
			return err
		}
	}

	all := make([]domain.Car, 0, total)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		all = append(all, pages[pageNum]...)
	}

	if err := s.store.ReplaceAll(ctx, all); err != nil {
		return fmt.Errorf("failed to warm snapshot: %w", err)
	}

	if s.repository != nil {
		var wg sync.WaitGroup
		semaphore := make(chan struct{}, s.maxWorkers)
		for i := range all {
			wg.Add(1)
			go func(car *domain.Car) {
				defer wg.Done()
				semaphore <- struct{}{}
				defer func() { <-semaphore }()
				if err := s.repository.SaveCar(ctx, car); err != nil {
					log.Errorf("❌ Failed to archive car %s: %v", car.RegistrationNo, err)
				}
			}(&all[i])
		}
		wg.Wait()
	}

	log.Infof("✅ Synced %d cars across %d pages", len(all), totalPages)
	return nil
}
