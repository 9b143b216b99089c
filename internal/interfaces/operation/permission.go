// Package operation
package operation

type Permission int64

// 权限节点上限是64, 超过64需要使用切片
const (
	AdminEntry Permission = 1 << iota
	UserShowList
	UserEditPermission
	ReferenceShow
	ReferenceEdit
	ScheduleUpload
	PlanRun
	MaintenanceCreate
	MaintenanceApprove
	AuditLogShow
)

var PermissionMap = map[string]Permission{
	"AdminEntry":         AdminEntry,
	"UserShowList":       UserShowList,
	"UserEditPermission": UserEditPermission,
	"ReferenceShow":      ReferenceShow,
	"ReferenceEdit":      ReferenceEdit,
	"ScheduleUpload":     ScheduleUpload,
	"PlanRun":            PlanRun,
	"MaintenanceCreate":  MaintenanceCreate,
	"MaintenanceApprove": MaintenanceApprove,
	"AuditLogShow":       AuditLogShow,
}

func (p *Permission) IsValid() bool {
	maxPerm := AuditLogShow<<1 - 1 // 计算最大有效位
	return *p >= 0 && *p <= maxPerm
}

func (p *Permission) HasPermission(perm Permission) bool {
	return *p&perm != 0
}

func (p *Permission) Grant(perm Permission) {
	*p |= perm
}

func (p *Permission) Revoke(perm Permission) {
	*p &^= perm
}
