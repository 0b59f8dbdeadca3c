package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonDigit = regexp.MustCompile(`\D`)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateSendConversionInput(input SendConversionInput) []ValidationError {
	var errors []ValidationError

	if input.Lead == nil {
		errors = append(errors, ValidationError{"lead", "is required"})
	}

	return errors
}

// OnlyDigits remove tudo que não for dígito: "(11) 98888-7777" -> "11988887777".
func OnlyDigits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Formatos aceitos no created_time da planilha de leads.
var createdTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700", // formato nativo da exportação de leads
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCreatedTime converte o created_time para Unix seconds.
// String vazia devolve nil sem erro.
func ParseCreatedTime(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if isAllDigits(raw) {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("created_time inválido %q: %w", raw, err)
		}
		// exportações às vezes vêm em milissegundos
		if ts > 1e12 {
			ts /= 1000
		}
		return &ts, nil
	}

	for _, layout := range createdTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts := t.Unix()
			return &ts, nil
		}
	}

	return nil, fmt.Errorf("created_time inválido %q", raw)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
