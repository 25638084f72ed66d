package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/invoice-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/invoice-control-api/infrastructure/migration"
	"github.com/vfg2006/invoice-control-api/internal/config"
	"github.com/vfg2006/invoice-control-api/pkg/log"
)

// Cria as tabelas do histórico de relatórios
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := migration.Up(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}
}
