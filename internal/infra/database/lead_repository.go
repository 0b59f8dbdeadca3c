package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-conversions/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert sobrescreve todas as colunas em caso de conflito (não faz merge).
const upsertLeadQuery = `
	INSERT INTO leads (
		external_lead_id, created_time, email, phone, first_name, last_name,
		date_of_birth, city, region, postal_code, ad_id, ad_name, adset_id,
		adset_name, campaign_id, campaign_name, form_id, form_name, platform,
		is_organic, lead_status, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW())
	ON CONFLICT (external_lead_id) DO UPDATE SET
		created_time = EXCLUDED.created_time, email = EXCLUDED.email, phone = EXCLUDED.phone,
		first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, date_of_birth = EXCLUDED.date_of_birth,
		city = EXCLUDED.city, region = EXCLUDED.region, postal_code = EXCLUDED.postal_code,
		ad_id = EXCLUDED.ad_id, ad_name = EXCLUDED.ad_name, adset_id = EXCLUDED.adset_id,
		adset_name = EXCLUDED.adset_name, campaign_id = EXCLUDED.campaign_id, campaign_name = EXCLUDED.campaign_name,
		form_id = EXCLUDED.form_id, form_name = EXCLUDED.form_name, platform = EXCLUDED.platform,
		is_organic = EXCLUDED.is_organic, lead_status = EXCLUDED.lead_status,
		updated_at = NOW()
`

const selectLeadColumns = `
	SELECT
		external_lead_id, created_time, email, phone, first_name, last_name,
		date_of_birth, city, region, postal_code, ad_id, ad_name, adset_id,
		adset_name, campaign_id, campaign_name, form_id, form_name, platform,
		is_organic, lead_status, updated_at
	FROM leads
`

// UpsertBatch grava o lote numa transação: commit só se todas as linhas passarem.
func (r *LeadRepository) UpsertBatch(ctx context.Context, leads []*entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	// Rollback depois do Commit é no-op
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertLeadQuery)
	if err != nil {
		return fmt.Errorf("erro ao preparar upsert: %w", err)
	}
	defer stmt.Close()

	for _, lead := range leads {
		_, err := stmt.ExecContext(ctx,
			lead.ExternalLeadID,
			nullInt64(lead.CreatedTime),
			nullString(lead.Email),
			nullString(lead.Phone),
			nullString(lead.FirstName),
			nullString(lead.LastName),
			nullString(lead.DateOfBirth),
			nullString(lead.City),
			nullString(lead.Region),
			nullString(lead.PostalCode),
			nullString(lead.AdID),
			nullString(lead.AdName),
			nullString(lead.AdsetID),
			nullString(lead.AdsetName),
			nullString(lead.CampaignID),
			nullString(lead.CampaignName),
			nullString(lead.FormID),
			nullString(lead.FormName),
			nullString(lead.Platform),
			nullBool(lead.IsOrganic),
			nullString(lead.LeadStatus),
		)
		if err != nil {
			return fmt.Errorf("erro ao gravar lead %s: %w", lead.ExternalLeadID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("erro no commit da importação: %w", err)
	}
	return nil
}

// FindByContact casa por email (case-insensitive) OU telefone.
// Desempate: casou os dois > updated_at mais recente > created_time mais recente > id.
func (r *LeadRepository) FindByContact(ctx context.Context, email, phone string) (*entity.Lead, error) {
	query := selectLeadColumns + `
	WHERE LOWER(email) = $1 OR phone = $2
	ORDER BY
		COALESCE(LOWER(email) = $1 AND phone = $2, FALSE) DESC,
		updated_at DESC,
		created_time DESC NULLS LAST,
		external_lead_id
	LIMIT 1
	`

	row := r.DB.QueryRowContext(ctx, query, nullString(email), nullString(phone))
	return scanLead(row)
}

func (r *LeadRepository) FindByID(ctx context.Context, externalLeadID string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, selectLeadColumns+` WHERE external_lead_id = $1`, externalLeadID)
	return scanLead(row)
}

func scanLead(row *sql.Row) (*entity.Lead, error) {
	var (
		lead        entity.Lead
		createdTime sql.NullInt64
		isOrganic   sql.NullBool
		text        [18]sql.NullString
	)

	err := row.Scan(
		&lead.ExternalLeadID,
		&createdTime,
		&text[0], &text[1], &text[2], &text[3], &text[4], &text[5], &text[6],
		&text[7], &text[8], &text[9], &text[10], &text[11], &text[12], &text[13],
		&text[14], &text[15], &text[16],
		&isOrganic,
		&text[17],
		&lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("erro ao ler lead: %w", err)
	}

	if createdTime.Valid {
		lead.CreatedTime = &createdTime.Int64
	}
	if isOrganic.Valid {
		lead.IsOrganic = &isOrganic.Bool
	}

	targets := []*string{
		&lead.Email, &lead.Phone, &lead.FirstName, &lead.LastName, &lead.DateOfBirth,
		&lead.City, &lead.Region, &lead.PostalCode, &lead.AdID, &lead.AdName, &lead.AdsetID,
		&lead.AdsetName, &lead.CampaignID, &lead.CampaignName, &lead.FormID, &lead.FormName,
		&lead.Platform, &lead.LeadStatus,
	}
	for i, target := range targets {
		*target = text[i].String
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}
