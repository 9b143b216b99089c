// Package operation
package operation

type EventType string

const (
	UserPermissionGrant    EventType = "UserPermissionGrant"
	UserPermissionRevoke   EventType = "UserPermissionRevoke"
	ReferenceEntityCreated EventType = "ReferenceEntityCreated"
	ReferenceEntityUpdated EventType = "ReferenceEntityUpdated"
	ReferenceEntityDeleted EventType = "ReferenceEntityDeleted"
	ScheduleUploaded       EventType = "ScheduleUploaded"
	AllocationRunStarted   EventType = "AllocationRunStarted"
	AllocationRunFinished  EventType = "AllocationRunFinished"
	MaintenanceCreated     EventType = "MaintenanceCreated"
	MaintenanceTransition  EventType = "MaintenanceTransition"
)

type ChangeDetail struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

type AuditLogOperationInterface interface {
	NewAuditLog(eventType EventType, subject uint, object, ip, userAgent string, changeDetails *ChangeDetail) (auditLog *AuditLog)
	SaveAuditLog(auditLog *AuditLog) (err error)
	SaveAuditLogs(auditLogs []*AuditLog) (err error)
	GetAuditLogs(page, pageSize int) (auditLogs []*AuditLog, total int64, err error)
}
