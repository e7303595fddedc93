// Package container builds the application graph once at startup and hands
// it to the router and the binaries.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/cache"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-blog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/queue"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/storage"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

const pingTimeout = 3 * time.Second

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Pool  *pgxpool.Pool // nil with the memory store
	Redis *redis.Client // nil when Redis is unavailable

	Users    repository.UserRepository
	Blogs    repository.BlogRepository
	Comments repository.CommentRepository

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Bucket  *storage.GCSStore // nil when uploads live on local disk

	AuthService    *application.AuthService
	BlogService    *application.BlogService
	CommentService *application.CommentService

	closers      []func()
	searchActive bool
	notifyActive bool
}

// New wires every component from cfg. Only the store and the upload
// backend are required; Redis, Elasticsearch and RabbitMQ are skipped
// with a warning when they are not configured or not reachable.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		JWT:     helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}

	if err := c.openStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	files, err := c.openFiles(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.openRedis(ctx)

	var feed application.FeedCache
	if c.Redis != nil {
		feed = cache.NewFeedCache(c.Redis, cfg.PublicFeedCacheTTL)
	}
	var idx application.BlogSearch
	if bi := c.openSearch(ctx); bi != nil {
		idx = bi
		c.searchActive = true
	}
	var pub application.Publisher
	if r := c.openQueue(); r != nil {
		pub = r
		c.notifyActive = true
	}

	uploads := application.NewUploader(files, cfg.UploadMaxBytes, logger)
	notify := application.NewNotifier(pub, mailtpl.Brand{AppName: cfg.AppName, BaseURL: cfg.AppBaseURL}, logger)

	c.AuthService = application.NewAuthService(c.Users, c.JWT, uploads, notify, logger, cfg.DefaultProfileImage)
	c.BlogService = application.NewBlogService(c.Blogs, c.Comments, c.Users, uploads, idx, feed, logger)
	c.CommentService = application.NewCommentService(c.Comments, c.Blogs, c.Users, notify, logger)

	logger.WithFields(logrus.Fields{
		"store":  cfg.StoreDriver,
		"redis":  c.Redis != nil,
		"search": c.searchActive,
		"notify": c.notifyActive,
		"gcs":    c.Bucket != nil,
	}).Info("container ready")
	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	if c.Config.UseMemoryStore() {
		s := memory.NewStore()
		c.Users, c.Blogs, c.Comments = s.Users(), s.Blogs(), s.Comments()
		return nil
	}

	pool, err := pginfra.NewPool(ctx, c.Config.PostgresDSN(), c.Config.DBMaxConns, c.Config.DBMinConns, c.Config.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	c.Pool = pool
	c.closers = append(c.closers, pool.Close)

	if err := pginfra.RunMigrations(c.Config.PostgresDSN(), c.Config.MigrationsDir, c.Logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	c.Users = pginfra.NewUserRepository(pool)
	c.Blogs = pginfra.NewBlogRepository(pool)
	c.Comments = pginfra.NewCommentRepository(pool)
	return nil
}

func (c *Container) openFiles(ctx context.Context) (application.FileStore, error) {
	if c.Config.GCSBucket == "" {
		local, err := storage.NewLocalStore(c.Config.UploadsDir)
		if err != nil {
			return nil, fmt.Errorf("uploads dir: %w", err)
		}
		return local, nil
	}

	client, err := storage.NewGCSClient(ctx, c.Config.GCSCredentialsJSONPath)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	c.closers = append(c.closers, func() { _ = client.Close() })
	c.Bucket = storage.NewGCSStore(client, c.Config.GCSBucket)
	return c.Bucket, nil
}

func (c *Container) openRedis(ctx context.Context) {
	if c.Config.RedisAddr == "" {
		return
	}
	rdb := cache.NewRedisClient(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		c.Logger.WithError(err).Warn("redis unavailable; feed cache and rate limits disabled")
		_ = rdb.Close()
		return
	}
	c.Redis = rdb
	c.closers = append(c.closers, func() { _ = rdb.Close() })
}

func (c *Container) openSearch(ctx context.Context) *search.BlogIndex {
	addrs := c.Config.ESAddrs()
	if len(addrs) == 0 {
		return nil
	}
	es, err := search.NewClient(addrs, c.Config.ElasticsearchUser, c.Config.ElasticsearchPass)
	if err != nil {
		c.Logger.WithError(err).Warn("elasticsearch client; search falls back to the store")
		return nil
	}
	idx := search.NewBlogIndex(es, c.Config.ESBlogsIndex)
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := idx.EnsureIndex(pctx); err != nil {
		c.Logger.WithError(err).Warn("elasticsearch unavailable; search falls back to the store")
		return nil
	}
	return idx
}

func (c *Container) openQueue() *queue.Rabbit {
	if c.Config.RabbitMQURL == "" {
		return nil
	}
	r, err := queue.Dial(c.Config.RabbitMQURL, c.Config.RabbitMQNotifyQueue)
	if err != nil {
		c.Logger.WithError(err).Warn("rabbitmq unavailable; notifications disabled")
		return nil
	}
	c.closers = append(c.closers, r.Close)
	return r
}

// Close releases backends in reverse order of opening.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
