package domain

import "time"

// ReportHistoryEntry registra um relatório de pendências gerado
type ReportHistoryEntry struct {
	ID               string    `json:"id"`
	SelectedMonth    string    `json:"selected_month"` // Formato yyyy-mm
	SourceFile       string    `json:"source_file"`
	TotalCompanies   int       `json:"total_companies"`
	PendingCompanies []string  `json:"pending_companies"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}
