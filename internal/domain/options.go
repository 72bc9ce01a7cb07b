package domain

// TicketOption is one entry of an enumerated ticket attribute set.
// SLAHours, when present on a status option, overrides the built-in
// business-hour deadline for tickets in that status.
type TicketOption struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Default  bool     `json:"default,omitempty"`
	SLAHours *float64 `json:"sla_hours,omitempty"`
}

// OptionCatalog bundles the valid attribute sets the upstream exposes.
type OptionCatalog struct {
	Statuses     []TicketOption `json:"statuses"`
	Priorities   []TicketOption `json:"priorities"`
	Types        []TicketOption `json:"types"`
	SupportTypes []TicketOption `json:"support_types"`
	BillingTypes []TicketOption `json:"billing_types"`
}
