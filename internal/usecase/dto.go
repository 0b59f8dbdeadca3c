package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ImportLeadInput é uma linha da exportação de leads (planilha convertida em JSON).
type ImportLeadInput struct {
	ID               FlexString `json:"id"`
	CreatedTime      FlexString `json:"created_time"`
	Email            FlexString `json:"email"`
	PhoneNumber      FlexString `json:"phone_number"`
	Nome             FlexString `json:"nome"`
	Sobrenome        FlexString `json:"sobrenome"`
	DataDeNascimento FlexString `json:"data_de_nascimento"`
	City             FlexString `json:"city"`
	State            FlexString `json:"state"`
	CEP              FlexString `json:"cep"`
	AdID             FlexString `json:"ad_id"`
	AdName           FlexString `json:"ad_name"`
	AdsetID          FlexString `json:"adset_id"`
	AdsetName        FlexString `json:"adset_name"`
	CampaignID       FlexString `json:"campaign_id"`
	CampaignName     FlexString `json:"campaign_name"`
	FormID           FlexString `json:"form_id"`
	FormName         FlexString `json:"form_name"`
	Platform         FlexString `json:"platform"`
	IsOrganic        FlexBool   `json:"is_organic"`
	LeadStatus       FlexString `json:"lead_status"`
}

// FlexString aceita string, número ou null (planilhas exportam IDs e CEPs como número).
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("valor inválido para texto: %s", string(data))
	}
	*s = FlexString(num.String())
	return nil
}

func (s FlexString) String() string {
	return strings.TrimSpace(string(s))
}

// FlexBool aceita true/false, "true"/"false", "1"/"0" ou null.
type FlexBool struct {
	Value *bool
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		b.Value = nil
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	var v bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "sim", "yes":
		v = true
	case "false", "0", "não", "nao", "no":
		v = false
	case "":
		b.Value = nil
		return nil
	default:
		return fmt.Errorf("valor inválido para is_organic: %s", string(data))
	}
	b.Value = &v
	return nil
}
