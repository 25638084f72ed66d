package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/invoice-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/invoice-control-api/internal/domain"
)

const (
	reportHistoryTable   = "pendency_reports"
	reportHistoryColumns = "id, selected_month, source_file, total_companies, pending_companies, created_by, created_at"
)

//go:generate mockgen -source=report_history.go -destination=mocks/mock_report_history.go -package=mocks

type ReportHistoryRepository interface {
	Save(entry *domain.ReportHistoryEntry) error
	GetByID(id string) (*domain.ReportHistoryEntry, error)
	List(limit int) ([]*domain.ReportHistoryEntry, error)
	DeleteOlderThan(months int) (int64, error)
}

type reportHistoryRepository struct {
	conn *postgres.Connection
}

func NewReportHistoryRepository(conn *postgres.Connection) ReportHistoryRepository {
	return &reportHistoryRepository{
		conn: conn,
	}
}

func (r *reportHistoryRepository) Save(entry *domain.ReportHistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query, args, err := squirrel.
		Insert(reportHistoryTable).
		Columns("id", "selected_month", "source_file", "total_companies", "pending_companies", "created_by", "created_at").
		Values(
			entry.ID,
			entry.SelectedMonth,
			entry.SourceFile,
			entry.TotalCompanies,
			pq.Array(entry.PendingCompanies),
			entry.CreatedBy,
			entry.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *reportHistoryRepository) GetByID(id string) (*domain.ReportHistoryEntry, error) {
	query, args, err := squirrel.
		Select(reportHistoryColumns).
		From(reportHistoryTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry, err := scanEntry(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear relatório: %w", err)
	}

	return entry, nil
}

// List retorna os relatórios mais recentes primeiro
func (r *reportHistoryRepository) List(limit int) ([]*domain.ReportHistoryEntry, error) {
	builder := squirrel.
		Select(reportHistoryColumns).
		From(reportHistoryTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.ReportHistoryEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear relatório: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *reportHistoryRepository) DeleteOlderThan(months int) (int64, error) {
	cutoff := time.Now().AddDate(0, -months, 0)

	query, args, err := squirrel.
		Delete(reportHistoryTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*domain.ReportHistoryEntry, error) {
	entry := &domain.ReportHistoryEntry{}

	err := row.Scan(
		&entry.ID,
		&entry.SelectedMonth,
		&entry.SourceFile,
		&entry.TotalCompanies,
		pq.Array(&entry.PendingCompanies),
		&entry.CreatedBy,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return entry, nil
}
