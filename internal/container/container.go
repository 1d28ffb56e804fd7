package container

import (
	"context"
	"fmt"

	"preowned/catalog/internal/auth"
	"preowned/catalog/internal/cache"
	"preowned/catalog/internal/client"
	"preowned/catalog/internal/config"
	"preowned/catalog/internal/repository"
	"preowned/catalog/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Catalog    client.CatalogClient
	Enquiry    client.EnquiryClient
	Store      cache.SnapshotStore
	Repository repository.CarRepository
	Gate       *auth.Gate

	Listing   *service.Listing
	Enquiries *service.Enquiries
	Admin     *service.Admin
	Sync      *service.Sync

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	var store cache.SnapshotStore
	var sessions auth.SessionStore

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		store = cache.NewRedisStore(rdb)
		sessions = auth.NewRedisSessionStore(rdb)
	} else {
		store = cache.NewMemoryStore()
		sessions = auth.NewMemorySessionStore()
	}
	container.Store = store

	if cfg.Sync.Archive {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, err
		}
		container.db = db
		container.Repository = repository.NewCarRepository(db)
	}

	container.Catalog = client.NewCatalogClient(cfg.API)
	container.Enquiry = client.NewEnquiryClient(cfg.API)
	container.Gate = auth.NewGate(cfg.Admin, sessions)

	reporter := service.NewLogReporter()
	container.Listing = service.NewListing(container.Catalog, store, reporter, cfg.API.PageSize)
	container.Enquiries = service.NewEnquiries(container.Catalog, container.Enquiry)
	container.Admin = service.NewAdmin(container.Catalog, store, container.Gate)
	container.Sync = service.NewSync(container.Catalog, store, container.Repository, cfg.API.PageSize, cfg.API.MaxWorkers)

	return container, nil
}

// Run warms the snapshot cache (and the archive, when configured) and loads
// the first listing page.
func (c *Container) Run(ctx context.Context) error {
	if err := c.Sync.Run(ctx); err != nil {
		return err
	}

	models, err := c.Listing.Models(ctx)
	if err != nil {
		return err
	}
	locations, err := c.Listing.Locations(ctx)
	if err != nil {
		return err
	}
	log.Infof("Catalog ready: %d model options, %d location options", len(models)-1, len(locations)-1)

	c.Listing.Refresh(ctx)
	log.Infof("First page loaded: %d of %d cars", len(c.Listing.Cars()), c.Listing.Total())

	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}

	log.Info("Container shut down successfully")
	return nil
}
