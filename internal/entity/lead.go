package entity

import (
	"context"
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead é o registro importado da exportação de formulários de anúncio.
// ExternalLeadID é o ID emitido pela plataforma de anúncios e nunca muda.
type Lead struct {
	ExternalLeadID string `json:"external_lead_id"`
	CreatedTime    *int64 `json:"created_time,omitempty"` // Unix seconds

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"` // só dígitos

	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`

	AdID         string `json:"ad_id,omitempty"`
	AdName       string `json:"ad_name,omitempty"`
	AdsetID      string `json:"adset_id,omitempty"`
	AdsetName    string `json:"adset_name,omitempty"`
	CampaignID   string `json:"campaign_id,omitempty"`
	CampaignName string `json:"campaign_name,omitempty"`
	FormID       string `json:"form_id,omitempty"`
	FormName     string `json:"form_name,omitempty"`
	Platform     string `json:"platform,omitempty"`
	IsOrganic    *bool  `json:"is_organic,omitempty"`

	LeadStatus string    `json:"lead_status,omitempty"` // etapa do CRM, texto livre
	UpdatedAt  time.Time `json:"updated_at"`
}

type LeadRepositoryInterface interface {
	// UpsertBatch grava todos os leads numa única transação (tudo ou nada).
	UpsertBatch(ctx context.Context, leads []*Lead) error
	// FindByContact busca por email OU telefone já normalizados.
	// String vazia não participa da busca. Retorna ErrLeadNotFound.
	FindByContact(ctx context.Context, email, phone string) (*Lead, error)
	FindByID(ctx context.Context, externalLeadID string) (*Lead, error)
}
