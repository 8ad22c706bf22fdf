package events

import "time"

const PayrollRunStatusChangedTopic = "payroll.run.status.changed.v1"

type PayrollRunStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	RunID        string    `json:"run_id"`
	CompanyID    string    `json:"company_id"`
	SiteID       string    `json:"site_id"`
	PayrollMonth int       `json:"payroll_month"`
	PayrollYear  int       `json:"payroll_year"`
	FromStatus   string    `json:"from_status"`
	ToStatus     string    `json:"to_status"`
	ChangedBy    string    `json:"changed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
