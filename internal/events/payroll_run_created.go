package events

import "time"

const PayrollRunCreatedTopic = "payroll.run.created.v1"

type PayrollRunCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RunID          string    `json:"run_id"`
	CompanyID      string    `json:"company_id"`
	SiteID         string    `json:"site_id"`
	PayrollMonth   int       `json:"payroll_month"`
	PayrollYear    int       `json:"payroll_year"`
	EmployeeCount  int       `json:"employee_count"`
	ExceptionCount int       `json:"exception_count"`
	CreatedBy      string    `json:"created_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
