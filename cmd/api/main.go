package main

import (
	"context"

	"github.com/andresaguirresm-cpu/reportes-web/infrastructure/database"
	"github.com/andresaguirresm-cpu/reportes-web/infrastructure/repository"
	"github.com/andresaguirresm-cpu/reportes-web/internal/api"
	"github.com/andresaguirresm-cpu/reportes-web/internal/api/handler"
	"github.com/andresaguirresm-cpu/reportes-web/internal/config"
	"github.com/andresaguirresm-cpu/reportes-web/internal/scheduler"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/normalizing"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/reporting"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log.Setup("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	historyRepo, pinger, closeStore := historyStore(ctx, cfg)
	defer closeStore()

	fileProcessor := normalizing.NewService()
	historyComparator := reporting.NewHistoryComparator(historyRepo)
	reporter := reporting.NewService(fileProcessor, historyComparator, cfg.Processing)

	historyRetentionService := scheduler.NewHistoryRetentionService(historyRepo, cfg)
	if err := historyRetentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de histórico")
	} else {
		logrus.Info("Agendador de limpeza de histórico iniciado com sucesso")
	}

	server, err := api.New(cfg, reporter, pinger, historyRetentionService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// historyStore cria o repositório de histórico do backend configurado
func historyStore(ctx context.Context, cfg *config.Config) (repository.RunHistoryRepository, handler.Pinger, func()) {
	if cfg.History.Backend == config.HistoryBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
		}

		logrus.WithField("addr", cfg.Redis.Addr).Info("Conexão com Redis estabelecida com sucesso")
		return repository.NewRedisRunHistoryRepository(client), redisPinger{client}, func() { _ = client.Close() }
	}

	conn := dbconn(ctx, cfg.Database)
	return repository.NewRunHistoryRepository(conn), conn, func() { _ = conn.Close() }
}

// dbconn abre a conexão e garante o esquema do histórico
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar ao banco de dados")
	}

	if err := database.EnsureSchema(ctx, conn, conn.Driver); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar esquema do histórico")
	}

	logrus.WithField("driver", dbConfig.Driver).Info("Conexão com banco de dados estabelecida com sucesso")
	return conn
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
