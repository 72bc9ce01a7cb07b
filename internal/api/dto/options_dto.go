package dto

// OptionResponse is one enumerated ticket attribute value.
type OptionResponse struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Default  bool     `json:"default,omitempty"`
	SLAHours *float64 `json:"sla_hours,omitempty"`
}

// OptionCatalogResponse bundles all attribute sets.
type OptionCatalogResponse struct {
	Statuses     []OptionResponse `json:"statuses"`
	Priorities   []OptionResponse `json:"priorities"`
	Types        []OptionResponse `json:"types"`
	SupportTypes []OptionResponse `json:"support_types"`
	BillingTypes []OptionResponse `json:"billing_types"`
}
