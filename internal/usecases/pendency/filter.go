package pendency

import (
	"sort"

	"github.com/vfg2006/invoice-control-api/internal/domain"
)

// ComputePendencies lista as empresas sem nota no mês selecionado e os meses presentes na planilha.
// Um mês sem nenhuma nota resulta em todas as empresas pendentes.
func ComputePendencies(table *domain.InvoiceTable, selected domain.MonthKey) ([]domain.PendencyRecord, []domain.MonthKey) {
	if table == nil {
		return []domain.PendencyRecord{}, []domain.MonthKey{}
	}

	months := make(map[domain.MonthKey]struct{})
	withInvoice := make(map[string]struct{})
	companies := make([]string, 0)
	seen := make(map[string]struct{})

	for _, record := range table.Records {
		month := record.Month()
		months[month] = struct{}{}

		if record.CompanyName == "" {
			continue
		}

		if _, ok := seen[record.CompanyName]; !ok {
			seen[record.CompanyName] = struct{}{}
			companies = append(companies, record.CompanyName)
		}

		if month == selected {
			withInvoice[record.CompanyName] = struct{}{}
		}
	}

	pendencies := make([]domain.PendencyRecord, 0, len(companies)-len(withInvoice))
	for _, company := range companies {
		if _, ok := withInvoice[company]; ok {
			continue
		}
		pendencies = append(pendencies, domain.PendencyRecord{
			CompanyName:  company,
			PendingMonth: selected,
		})
	}

	return pendencies, sortMonthsDesc(months)
}

// AvailableMonths retorna os meses presentes na planilha, do mais recente para o mais antigo
func AvailableMonths(table *domain.InvoiceTable) []domain.MonthKey {
	months := make(map[domain.MonthKey]struct{})
	if table != nil {
		for _, record := range table.Records {
			months[record.Month()] = struct{}{}
		}
	}
	return sortMonthsDesc(months)
}

// CountCompanies retorna o número de empresas distintas na planilha filtrada
func CountCompanies(table *domain.InvoiceTable) int {
	if table == nil {
		return 0
	}

	companies := make(map[string]struct{})
	for _, record := range table.Records {
		if record.CompanyName != "" {
			companies[record.CompanyName] = struct{}{}
		}
	}
	return len(companies)
}

func sortMonthsDesc(set map[domain.MonthKey]struct{}) []domain.MonthKey {
	months := make([]domain.MonthKey, 0, len(set))
	for m := range set {
		months = append(months, m)
	}

	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})

	return months
}
