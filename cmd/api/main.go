package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/invoice-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/invoice-control-api/infrastructure/repository"
	"github.com/vfg2006/invoice-control-api/infrastructure/spreadsheet"
	"github.com/vfg2006/invoice-control-api/internal/api"
	"github.com/vfg2006/invoice-control-api/internal/api/handler"
	"github.com/vfg2006/invoice-control-api/internal/config"
	"github.com/vfg2006/invoice-control-api/internal/scheduler"
	"github.com/vfg2006/invoice-control-api/internal/usecases/authenticating"
	"github.com/vfg2006/invoice-control-api/internal/usecases/pendency"
	"github.com/vfg2006/invoice-control-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)

	if len(cfg.Auth.Users) == 0 {
		logrus.Warn("Nenhum usuário configurado em AUTH_USERS, apenas /healthcheck responderá")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// O histórico é opcional, sem ele a API não depende do PostgreSQL
	var historyRepo repository.ReportHistoryRepository
	if cfg.ReportHistory.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		historyRepo = repository.NewReportHistoryRepository(pgConn)
	}

	authenticator := authenticating.NewService(cfg)

	reader := spreadsheet.NewReader(spreadsheet.Options{SheetName: cfg.Invoice.SheetName})
	pendencyService := pendency.NewService(reader, historyRepo, cfg)

	cleanupService := scheduler.NewReportHistoryCleanupService(historyRepo, cfg)
	if err := cleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do histórico de relatórios")
	}

	server, err := api.New(
		cfg,
		authenticator,
		pendencyService,
		handler.CronJobServices{ReportHistoryCleanupService: cleanupService},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
