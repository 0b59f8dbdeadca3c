package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-conversions/internal/entity"
)

// Tags fixas de origem enviadas no custom_data.
const (
	EventSourceCRM  = "crm"
	LeadEventSource = "Greenn Sales"
)

type PayloadBuilder struct {
	Now   func() time.Time
	NewID func() string
}

func NewPayloadBuilder() *PayloadBuilder {
	return &PayloadBuilder{
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}
}

// Build monta o evento de conversão a partir do lead resolvido.
// Dados pessoais saem só como SHA-256; campo vazio não entra no user_data.
func (b *PayloadBuilder) Build(lead *entity.Lead, eventName string) entity.ConversionEvent {
	// O evento "Lead" usa a data de criação do lead para a atribuição ficar correta
	// mesmo com a notificação atrasada. Os demais usam o momento do envio.
	eventTime := b.Now().Unix()
	if eventName == entity.EventLead && lead.CreatedTime != nil {
		eventTime = *lead.CreatedTime
	}

	return entity.ConversionEvent{
		EventName:    eventName,
		EventTime:    eventTime,
		EventID:      b.NewID(),
		ActionSource: entity.ActionSourceSystemGenerated,
		UserData:     buildUserData(lead),
		CustomData: entity.CustomData{
			EventSource:     EventSourceCRM,
			LeadEventSource: LeadEventSource,
			CampaignID:      lead.CampaignID,
			AdID:            lead.AdID,
			AdsetID:         lead.AdsetID,
			FormID:          lead.FormID,
			Platform:        lead.Platform,
			IsOrganic:       lead.IsOrganic,
			LeadStatus:      lead.LeadStatus,
		},
	}
}

func buildUserData(lead *entity.Lead) entity.UserData {
	return entity.UserData{
		Email:       hashed(NormalizeEmail(lead.Email)),
		Phone:       hashed(OnlyDigits(lead.Phone)),
		FirstName:   hashed(normalizeText(lead.FirstName)),
		LastName:    hashed(normalizeText(lead.LastName)),
		DateOfBirth: hashed(OnlyDigits(lead.DateOfBirth)),
		City:        hashed(normalizeText(lead.City)),
		State:       hashed(normalizeText(lead.Region)),
		ZipCode:     hashed(OnlyDigits(lead.PostalCode)),
		LeadID:      lead.ExternalLeadID,
	}
}

// hashed recebe o valor já normalizado. Vazio -> nil (omitido no JSON).
func hashed(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return []string{HashSHA256(normalized)}
}

func HashSHA256(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
