package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/ligue-conversions/internal/entity"
)

func NewImportLeadsUseCase(repo entity.LeadRepositoryInterface) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Repo: repo}
}

// Execute converte as linhas e grava tudo numa transação só.
// Linha sem id é ignorada; qualquer outra linha com problema derruba o lote inteiro.
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, rows []ImportLeadInput) (*ImportLeadsOutput, error) {
	leads := make([]*entity.Lead, 0, len(rows))
	skipped := 0

	for i, row := range rows {
		if row.ID.String() == "" {
			skipped++
			continue
		}

		lead, err := toLead(row)
		if err != nil {
			return nil, &TechnicalError{
				Code:    CodeInvalidRow,
				Message: fmt.Sprintf("linha %d (id %s) inválida", i, row.ID.String()),
				Err:     err,
			}
		}
		leads = append(leads, lead)
	}

	if len(leads) > 0 {
		if err := uc.Repo.UpsertBatch(ctx, leads); err != nil {
			return nil, &TechnicalError{
				Code:    CodeStoreError,
				Message: "erro ao importar leads",
				Err:     err,
			}
		}
	}

	log.Printf("📥 %d lead(s) importados, %d ignorados sem id", len(leads), skipped)

	return &ImportLeadsOutput{
		Imported: len(leads),
		Skipped:  skipped,
		Msg:      "Leads importados com sucesso!",
	}, nil
}

func toLead(row ImportLeadInput) (*entity.Lead, error) {
	createdTime, err := ParseCreatedTime(row.CreatedTime.String())
	if err != nil {
		return nil, err
	}

	return &entity.Lead{
		ExternalLeadID: row.ID.String(),
		CreatedTime:    createdTime,
		Email:          row.Email.String(),
		Phone:          OnlyDigits(row.PhoneNumber.String()),
		FirstName:      row.Nome.String(),
		LastName:       row.Sobrenome.String(),
		DateOfBirth:    row.DataDeNascimento.String(),
		City:           row.City.String(),
		Region:         row.State.String(),
		PostalCode:     row.CEP.String(),
		AdID:           row.AdID.String(),
		AdName:         row.AdName.String(),
		AdsetID:        row.AdsetID.String(),
		AdsetName:      row.AdsetName.String(),
		CampaignID:     row.CampaignID.String(),
		CampaignName:   row.CampaignName.String(),
		FormID:         row.FormID.String(),
		FormName:       row.FormName.String(),
		Platform:       row.Platform.String(),
		IsOrganic:      row.IsOrganic.Value,
		LeadStatus:     row.LeadStatus.String(),
	}, nil
}
