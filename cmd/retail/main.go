package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jinzhu/gorm"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"retail-demo/internal/configs"
	httpdelivery "retail-demo/internal/delivery/http"
	"retail-demo/internal/delivery/kafka"
	"retail-demo/internal/delivery/rabbitmq"
	"retail-demo/internal/notify"
	"retail-demo/internal/repository"
	"retail-demo/internal/repository/fallback"
	"retail-demo/internal/repository/fileshare"
	"retail-demo/internal/repository/postgres"
	blobs "retail-demo/internal/repository/redis"
	"retail-demo/internal/service"
)

// @title retail storage service
// @version 1.0
// @description Customers, products, orders and contracts kept in a remote table store, blob store and file share, with an in-process fallback store when the remote side is unavailable. Writes emit notifications for the processing functions.

// @host localhost:8080
// @basePath /

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	logrus.Print("config parsed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remote := connectRemote(ctx, cfg)
	defer remote.close()

	repo := repository.NewRepository(remote.Remote, repository.Names{
		Tables:    cfg.Tables(),
		Share:     cfg.ShareName,
		Directory: cfg.ShareDirectory,
		BaseURL:   cfg.PublicBaseURL,
	}, fallback.NewStore())

	transport, closeTransport := newTransport(cfg)
	defer closeTransport()
	notifier := notify.New(transport, cfg.Queues(), notify.WithTimeout(cfg.NotifyTimeout))

	svc := service.NewService(repo, notifier, service.Containers{
		ProductImages: cfg.ProductImagesContainer,
		PaymentProofs: cfg.PaymentProofsContainer,
	})

	opts := []httpdelivery.Option{httpdelivery.WithMaxUpload(cfg.MaxUploadBytes)}
	if cfg.RateLimitRPS > 0 {
		opts = append(opts, httpdelivery.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	h := httpdelivery.NewHandler(svc, opts...)
	srv := new(httpdelivery.Server)

	go func() {
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}
	logrus.Print("service stopped")
}

type remoteConns struct {
	repository.Remote
}

// connectRemote opens every remote store it can. A store that is not
// configured or not reachable stays nil and the repository serves it from
// the fallback store.
func connectRemote(ctx context.Context, cfg configs.Config) remoteConns {
	var rc remoteConns

	if cfg.StorageConnectionString == "" {
		logrus.WithField("env", "STORAGE_CONNECTION_STRING").
			Log(logrus.FatalLevel, "storage connection string is not set, serving from the fallback store")
	} else {
		rc.DB = connectTables(cfg)
		rc.Files = connectShare(ctx, cfg)
	}

	if cfg.RedisAddr != "" {
		rdb := blobs.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logrus.WithError(err).Error("redis unavailable, blobs disabled")
			_ = rdb.Close()
		} else {
			rc.Redis = rdb
			logrus.Print("connected to redis")
		}
	}
	return rc
}

func connectTables(cfg configs.Config) *gorm.DB {
	db, err := postgres.ConnectDB(cfg.StorageConnectionString)
	if err != nil {
		logrus.WithError(err).Error("table store unavailable")
		return nil
	}
	if err := postgres.Migrate(db, cfg.Tables()); err != nil {
		logrus.WithError(err).Error("table store migration failed")
		_ = db.Close()
		return nil
	}
	logrus.Print("connected to table store")
	return db
}

func connectShare(ctx context.Context, cfg configs.Config) *pgxpool.Pool {
	pool, err := fileshare.Connect(ctx, cfg.StorageConnectionString)
	if err != nil {
		logrus.WithError(err).Error("file share unavailable")
		return nil
	}
	if err := fileshare.EnsureSchema(ctx, pool); err != nil {
		logrus.WithError(err).Error("file share schema failed")
		pool.Close()
		return nil
	}
	logrus.Print("connected to file share")
	return pool
}

func (rc remoteConns) close() {
	if rc.DB != nil {
		if err := rc.DB.Close(); err != nil {
			logrus.Errorf("db close: %v", err)
		}
	}
	if rc.Files != nil {
		rc.Files.Close()
	}
	if rc.Redis != nil {
		if err := rc.Redis.Close(); err != nil {
			logrus.Errorf("redis close: %v", err)
		}
	}
}

// newTransport picks the broker notifications go out on. With no broker,
// every notification is reported as failed.
func newTransport(cfg configs.Config) (notify.Transport, func()) {
	switch cfg.NotifyBroker {
	case configs.BrokerKafka:
		pub := kafka.NewPublisher(cfg.KafkaBrokersSlice())
		logrus.Print("notifications go to kafka")
		return pub, func() {
			if err := pub.Close(); err != nil {
				logrus.Errorf("publisher close: %v", err)
			}
		}
	case configs.BrokerRabbitMQ:
		pub, err := rabbitmq.NewPublisher(rabbitmq.Config{
			URL:                cfg.RabbitMQURL,
			DeadLetterExchange: cfg.RabbitMQDLX,
		})
		if err != nil {
			logrus.WithError(err).Error("rabbitmq unavailable, notifications disabled")
			return nil, func() {}
		}
		logrus.Print("notifications go to rabbitmq")
		return pub, func() {
			if err := pub.Close(); err != nil {
				logrus.Errorf("publisher close: %v", err)
			}
		}
	}
	logrus.Warn("no notification broker configured")
	return nil, func() {}
}
