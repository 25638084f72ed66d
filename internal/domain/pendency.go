package domain

import "time"

// PendencyRecord representa uma empresa sem nota no mês consultado
type PendencyRecord struct {
	CompanyName  string   `json:"company_name"`
	PendingMonth MonthKey `json:"pending_month"`
}

// PendencyReport é o relatório de pendências de um mês
type PendencyReport struct {
	ID              string           `json:"id"`
	Source          string           `json:"source,omitempty"`
	SelectedMonth   MonthKey         `json:"selected_month"`
	AvailableMonths []MonthKey       `json:"available_months"`
	Pendencies      []PendencyRecord `json:"pendencies"`
	TotalCompanies  int              `json:"total_companies"`
	Message         string           `json:"message"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// Empty indica que nenhuma empresa está pendente no mês
func (r *PendencyReport) Empty() bool {
	return len(r.Pendencies) == 0
}

// CompanyNames retorna os nomes das empresas pendentes na ordem do relatório
func (r *PendencyReport) CompanyNames() []string {
	names := make([]string, 0, len(r.Pendencies))
	for _, p := range r.Pendencies {
		names = append(names, p.CompanyName)
	}
	return names
}

// PendencyUpload é o arquivo enviado para geração do relatório
type PendencyUpload struct {
	FileName string
	Content  []byte
}
