package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/invoice-control-api/infrastructure/database/postgres"
)

// Migration é um passo idempotente de criação de schema
type Migration struct {
	Name       string
	Statements []string
}

// Migrations cria a tabela do histórico de relatórios de pendências
var Migrations = []Migration{
	{
		Name: "create_pendency_reports",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS pendency_reports (
				id                VARCHAR(21) PRIMARY KEY,
				selected_month    CHAR(7) NOT NULL,
				source_file       TEXT NOT NULL DEFAULT '',
				total_companies   INTEGER NOT NULL DEFAULT 0,
				pending_companies TEXT[] NOT NULL DEFAULT '{}',
				created_by        TEXT NOT NULL DEFAULT '',
				created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	},
	{
		Name: "index_pendency_reports_created_at",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_pendency_reports_created_at ON pendency_reports (created_at DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_pendency_reports_selected_month ON pendency_reports (selected_month)`,
		},
	},
}

// Up aplica todas as migrações dentro de uma transação
func Up(ctx context.Context, conn *postgres.Connection) error {
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, m := range Migrations {
			for _, stmt := range m.Statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("erro na migração %s: %w", m.Name, err)
				}
			}
			logrus.WithField("migration", m.Name).Debug("Migração aplicada")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"total":    len(Migrations),
		"duration": time.Since(startTime).String(),
	}).Info("Migrações concluídas")

	return nil
}
