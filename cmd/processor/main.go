package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jinzhu/gorm"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"retail-demo/internal/configs"
	"retail-demo/internal/delivery/kafka"
	"retail-demo/internal/delivery/rabbitmq"
	"retail-demo/internal/processor"
	"retail-demo/internal/repository"
	"retail-demo/internal/repository/fallback"
	"retail-demo/internal/repository/postgres"
)

type subscriber interface {
	Subscribe(ctx context.Context) error
	Close() error
}

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	logrus.Print("config parsed")
	if cfg.NotifyBroker == configs.BrokerNone {
		logrus.Fatal("NOTIFY_BROKER is none, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var db *gorm.DB
	if cfg.StorageConnectionString == "" {
		logrus.Warn("storage connection string is not set, customer rows will not be written")
	} else if db, err = postgres.ConnectDB(cfg.StorageConnectionString); err != nil {
		logrus.WithError(err).Error("table store unavailable")
		db = nil
	} else {
		defer func() {
			if derr := db.Close(); derr != nil {
				logrus.Errorf("db close: %v", derr)
			}
		}()
	}

	repo := repository.NewRepository(repository.Remote{DB: db}, repository.Names{Tables: cfg.Tables()}, fallback.NewStore())
	proc := processor.New(cfg.Queues(), repo.Customers)

	sub, err := newSubscriber(cfg, proc)
	if err != nil {
		logrus.Fatalf("consumer: %s", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sub.Subscribe(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return sub.Close()
	})
	logrus.WithField("queues", proc.Queues()).Printf("%s subscription started", cfg.NotifyBroker)

	if err := g.Wait(); err != nil {
		logrus.Fatalf("processor stopped: %v", err)
	}
	logrus.Print("processor stopped")
}

func newSubscriber(cfg configs.Config, proc *processor.Processor) (subscriber, error) {
	if cfg.NotifyBroker == configs.BrokerRabbitMQ {
		return rabbitmq.NewConsumer(rabbitmq.Config{
			URL:                cfg.RabbitMQURL,
			DeadLetterExchange: cfg.RabbitMQDLX,
			Prefetch:           cfg.RabbitMQPrefetch,
		}, proc.Queues(), proc)
	}
	return kafka.NewConsumer(kafka.Config{
		Brokers:     cfg.KafkaBrokersSlice(),
		GroupID:     cfg.KafkaGroupID,
		Topics:      proc.Queues(),
		DLQ:         cfg.KafkaDLQ,
		MaxRetries:  cfg.MaxRetries,
		BaseBackoff: cfg.BaseBackoff,
	}, proc), nil
}
