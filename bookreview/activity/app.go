package activity

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/bookreview/config"
	"github.com/Astemirdum/bookreview-service/bookreview/internal/server"
	"github.com/Astemirdum/bookreview-service/pkg/kafka"
	"github.com/Astemirdum/bookreview-service/pkg/logger"
)

// Run consumes the activity topic and serves the aggregated feed until
// SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	if !cfg.Kafka.Enabled() {
		return fmt.Errorf("activity feed needs KAFKA_ADDRS")
	}
	log := logger.NewLogger(cfg.Log, "activity")
	defer log.Sync() //nolint:errcheck

	group, err := kafka.NewConsumerGroup(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka.NewConsumerGroup %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feed := NewFeed(DefaultRecent)
	go func() {
		if err := kafka.Consume(ctx, group, NewConsumer(feed.Record, log), cfg.Kafka.Topic); err != nil {
			log.Error("kafka consume", zap.Error(err))
			stop()
		}
	}()

	srv := server.NewServer(cfg.Server, NewHandler(feed, log).NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Debug("Graceful shutdown")

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err := group.Close(); err != nil {
		log.Error("group.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
