// Package operation
package operation

type DatabaseOperations struct {
	userOperation        UserOperationInterface
	referenceOperation   ReferenceOperationInterface
	scheduleOperation    ScheduleOperationInterface
	maintenanceOperation MaintenanceOperationInterface
	auditLogOperation    AuditLogOperationInterface
}

func NewDatabaseOperations(
	userOperation UserOperationInterface,
	referenceOperation ReferenceOperationInterface,
	scheduleOperation ScheduleOperationInterface,
	maintenanceOperation MaintenanceOperationInterface,
	auditLogOperation AuditLogOperationInterface,
) *DatabaseOperations {
	return &DatabaseOperations{
		userOperation:        userOperation,
		referenceOperation:   referenceOperation,
		scheduleOperation:    scheduleOperation,
		maintenanceOperation: maintenanceOperation,
		auditLogOperation:    auditLogOperation,
	}
}

func (db *DatabaseOperations) UserOperation() UserOperationInterface {
	return db.userOperation
}

func (db *DatabaseOperations) ReferenceOperation() ReferenceOperationInterface {
	return db.referenceOperation
}

func (db *DatabaseOperations) ScheduleOperation() ScheduleOperationInterface {
	return db.scheduleOperation
}

func (db *DatabaseOperations) MaintenanceOperation() MaintenanceOperationInterface {
	return db.maintenanceOperation
}

func (db *DatabaseOperations) AuditLogOperation() AuditLogOperationInterface {
	return db.auditLogOperation
}
