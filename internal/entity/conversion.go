package entity

const (
	ActionSourceSystemGenerated = "system_generated"

	// EventLead é o evento de primeiro contato da plataforma.
	EventLead = "Lead"
)

// ConversionEvent é o evento enviado para a Conversions API. Não é persistido.
type ConversionEvent struct {
	EventName    string     `json:"event_name"`
	EventTime    int64      `json:"event_time"`
	EventID      string     `json:"event_id,omitempty"`
	ActionSource string     `json:"action_source"`
	UserData     UserData   `json:"user_data"`
	CustomData   CustomData `json:"custom_data"`
}

// UserData carrega os hashes SHA-256 dos dados pessoais. Campo vazio fica fora do JSON.
type UserData struct {
	Email       []string `json:"em,omitempty"`
	Phone       []string `json:"ph,omitempty"`
	FirstName   []string `json:"fn,omitempty"`
	LastName    []string `json:"ln,omitempty"`
	DateOfBirth []string `json:"db,omitempty"`
	City        []string `json:"ct,omitempty"`
	State       []string `json:"st,omitempty"`
	ZipCode     []string `json:"zp,omitempty"`
	LeadID      string   `json:"lead_id,omitempty"` // texto puro, não é PII
}

type CustomData struct {
	EventSource     string `json:"event_source"`
	LeadEventSource string `json:"lead_event_source"`
	CampaignID      string `json:"campaign_id,omitempty"`
	AdID            string `json:"ad_id,omitempty"`
	AdsetID         string `json:"adset_id,omitempty"`
	FormID          string `json:"form_id,omitempty"`
	Platform        string `json:"platform,omitempty"`
	IsOrganic       *bool  `json:"is_organic,omitempty"`
	LeadStatus      string `json:"lead_status,omitempty"`
}
