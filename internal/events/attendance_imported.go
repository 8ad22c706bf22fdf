package events

import "time"

const AttendanceImportedTopic = "payroll.attendance.imported.v1"

type AttendanceImportedEvent struct {
	EventType    string    `json:"event_type"`
	CompanyID    string    `json:"company_id"`
	SiteID       string    `json:"site_id"`
	PayrollMonth int       `json:"payroll_month"`
	PayrollYear  int       `json:"payroll_year"`
	Imported     int       `json:"imported"`
	Failed       int       `json:"failed"`
	ImportedBy   string    `json:"imported_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
