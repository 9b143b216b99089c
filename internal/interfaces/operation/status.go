// Package operation
package operation

// FlightNature 航班性质
type FlightNature int

const (
	NatureArrival   FlightNature = 1
	NatureDeparture FlightNature = 2
)

func (nature FlightNature) IsValid() bool {
	return nature == NatureArrival || nature == NatureDeparture
}

func (nature FlightNature) String() string {
	switch nature {
	case NatureArrival:
		return "arrival"
	case NatureDeparture:
		return "departure"
	default:
		return "unknown"
	}
}

// MaintenanceStatus 维护申请状态机
type MaintenanceStatus int

const (
	MaintenanceRequested  MaintenanceStatus = 1
	MaintenanceApproved   MaintenanceStatus = 2
	MaintenanceInProgress MaintenanceStatus = 3
	MaintenanceOnHold     MaintenanceStatus = 4
	MaintenanceCompleted  MaintenanceStatus = 5
	MaintenanceCancelled  MaintenanceStatus = 6
	MaintenanceRejected   MaintenanceStatus = 7
)

var maintenanceStatusString = map[MaintenanceStatus]string{
	MaintenanceRequested:  "requested",
	MaintenanceApproved:   "approved",
	MaintenanceInProgress: "in-progress",
	MaintenanceOnHold:     "on-hold",
	MaintenanceCompleted:  "completed",
	MaintenanceCancelled:  "cancelled",
	MaintenanceRejected:   "rejected",
}

var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenanceRequested:  {MaintenanceApproved, MaintenanceRejected, MaintenanceCancelled, MaintenanceOnHold},
	MaintenanceApproved:   {MaintenanceInProgress, MaintenanceCancelled, MaintenanceOnHold},
	MaintenanceInProgress: {MaintenanceCompleted, MaintenanceCancelled},
	MaintenanceOnHold:     {MaintenanceRequested, MaintenanceApproved, MaintenanceCancelled},
}

func (status MaintenanceStatus) String() string {
	if name, ok := maintenanceStatusString[status]; ok {
		return name
	}
	return "unknown"
}

func (status MaintenanceStatus) IsValid() bool {
	_, ok := maintenanceStatusString[status]
	return ok
}

// AffectsCapacity 只有已批准和进行中的维护占用机位
func (status MaintenanceStatus) AffectsCapacity() bool {
	return status == MaintenanceApproved || status == MaintenanceInProgress
}

func (status MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	for _, allowed := range maintenanceTransitions[status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ScenarioStatus 排班方案状态机: draft -> allocating -> allocated | failed
type ScenarioStatus int

const (
	ScenarioDraft ScenarioStatus = iota
	ScenarioAllocating
	ScenarioAllocated
	ScenarioFailed
)

var scenarioStatusString = []string{"draft", "allocating", "allocated", "failed"}

func (status ScenarioStatus) String() string {
	if status < 0 || int(status) >= len(scenarioStatusString) {
		return "unknown"
	}
	return scenarioStatusString[status]
}

func (status ScenarioStatus) CanTransitionTo(next ScenarioStatus) bool {
	switch status {
	case ScenarioDraft:
		return next == ScenarioAllocating
	case ScenarioAllocating:
		return next == ScenarioAllocated || next == ScenarioFailed
	case ScenarioAllocated, ScenarioFailed:
		return next == ScenarioAllocating
	default:
		return false
	}
}

// AdjacencyRestriction 邻接限制类型
const (
	// RestrictionSizeCap 相邻机位被限制为不超过MaxAdjacentSizeCode
	RestrictionSizeCap = 1
	// RestrictionClosed 相邻机位完全关闭
	RestrictionClosed = 2
)
