package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-conversions/internal/entity"
)

type LeadResolver struct {
	Repo entity.LeadRepositoryInterface
}

func NewLeadResolver(repo entity.LeadRepositoryInterface) *LeadResolver {
	return &LeadResolver{Repo: repo}
}

// Resolve encontra o lead importado que casa com o email OU o telefone do evento do CRM.
// Lead inexistente devolve entity.ErrLeadNotFound, que não é falha do pipeline.
// Quando mais de um registro casa, o desempate fica no repositório
// (casou os dois campos > updated_at mais recente > created_time mais recente).
func (r *LeadResolver) Resolve(ctx context.Context, email, phone string) (*entity.Lead, error) {
	email = NormalizeEmail(email)
	phone = OnlyDigits(phone)

	if email == "" && phone == "" {
		return nil, &DomainError{
			Code:    CodeMissingIdentity,
			Message: "E-mail ou telefone ausentes.",
		}
	}

	lead, err := r.Repo.FindByContact(ctx, email, phone)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, &TechnicalError{
			Code:    CodeStoreError,
			Message: "falha ao buscar lead",
			Err:     err,
		}
	}

	return lead, nil
}
