package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const monthLayout = "2006-01"

var ErrInvalidMonth = errors.New("mês de referência inválido")

// MonthKey é uma data truncada para ano e mês
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf trunca a data para o mês
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// ParseMonthKey aceita os formatos yyyy-mm e mm-yyyy
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	yearPart, monthPart := parts[0], parts[1]
	if len(yearPart) == 2 && len(monthPart) == 4 {
		yearPart, monthPart = monthPart, yearPart
	}

	if len(yearPart) != 4 || len(monthPart) != 2 {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	month, err := strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	return MonthKey{Year: year, Month: time.Month(month)}, nil
}

// Start retorna o primeiro instante do mês em UTC
func (m MonthKey) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m MonthKey) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Before indica se m é anterior a other
func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// String retorna o rótulo no formato yyyy-mm
func (m MonthKey) String() string {
	if m.IsZero() {
		return ""
	}
	return m.Start().Format(monthLayout)
}

func (m MonthKey) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MonthKey) UnmarshalText(text []byte) error {
	parsed, err := ParseMonthKey(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
