// Package service
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	c "github.com/half-nothing/stand-planner/internal/interfaces/config"
	"github.com/half-nothing/stand-planner/internal/interfaces/global"
	"github.com/half-nothing/stand-planner/internal/interfaces/log"
	"github.com/half-nothing/stand-planner/internal/interfaces/operation"
	. "github.com/half-nothing/stand-planner/internal/interfaces/service"
	"github.com/half-nothing/stand-planner/internal/planner"
	"github.com/half-nothing/stand-planner/internal/utils"
)

// runState 一次规划运行的实时状态, 运行结束后保留供进度查询
type runState struct {
	progress *planner.Progress
	status   string
}

type PlanService struct {
	logger               log.LoggerInterface
	config               *c.HttpServerConfig
	plannerConfig        *c.PlannerConfig
	userOperation        operation.UserOperationInterface
	referenceOperation   operation.ReferenceOperationInterface
	scheduleOperation    operation.ScheduleOperationInterface
	maintenanceOperation operation.MaintenanceOperationInterface
	auditLogOperation    operation.AuditLogOperationInterface
	storeService         StoreServiceInterface

	mu   sync.RWMutex
	runs map[uint]*runState
}

func NewPlanService(
	logger log.LoggerInterface,
	config *c.HttpServerConfig,
	plannerConfig *c.PlannerConfig,
	operations *operation.DatabaseOperations,
	storeService StoreServiceInterface,
) *PlanService {
	return &PlanService{
		logger:               logger,
		config:               config,
		plannerConfig:        plannerConfig,
		userOperation:        operations.UserOperation(),
		referenceOperation:   operations.ReferenceOperation(),
		scheduleOperation:    operations.ScheduleOperation(),
		maintenanceOperation: operations.MaintenanceOperation(),
		auditLogOperation:    operations.AuditLogOperation(),
		storeService:         storeService,
		runs:                 make(map[uint]*runState),
	}
}

var (
	SuccessCreateScenario = ApiStatus{StatusName: "CREATE_SCENARIO_SUCCESS", Description: "创建排班方案成功", HttpCode: Ok}
	SuccessGetScenario    = ApiStatus{StatusName: "GET_SCENARIO_SUCCESS", Description: "获取排班方案成功", HttpCode: Ok}
	ErrScenarioDay        = ApiStatus{StatusName: "SCENARIO_DAY_ERROR", Description: "运营日格式不正确", HttpCode: BadRequest}
)

func (planService *PlanService) CreateScenario(req *RequestCreateScenario) *ApiResponse[ResponseCreateScenario] {
	if req.Name == "" || req.Day == "" {
		return NewApiResponse[ResponseCreateScenario](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, err := time.ParseInLocation(global.DayLayout, req.Day, time.UTC); err != nil {
		return NewApiResponse[ResponseCreateScenario](&ErrScenarioDay, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseCreateScenario](planService.userOperation, req.Uid, operation.ScheduleUpload); res != nil {
		return res
	}
	scenario := planService.scheduleOperation.NewScenario(req.Name, req.Day)
	if _, res := CallDBFuncAndCheckError[interface{}, ResponseCreateScenario](func() (*interface{}, error) {
		return nil, planService.scheduleOperation.AddScenario(scenario)
	}); res != nil {
		return res
	}
	return NewApiResponse(&SuccessCreateScenario, Unsatisfied, (*ResponseCreateScenario)(scenario))
}

func (planService *PlanService) GetScenarioList(req *RequestScenarioList) *ApiResponse[ResponseScenarioList] {
	if req.Page <= 0 || req.PageSize <= 0 {
		return NewApiResponse[ResponseScenarioList](&ErrIllegalParam, Unsatisfied, nil)
	}
	scenarios, total, err := planService.scheduleOperation.GetScenarios(req.Page, req.PageSize)
	if err != nil {
		return NewApiResponse[ResponseScenarioList](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetScenario, Unsatisfied, &ResponseScenarioList{
		Items:    scenarios,
		Page:     req.Page,
		PageSize: req.PageSize,
		Total:    total,
	})
}

func (planService *PlanService) GetScenarioDetail(req *RequestScenarioDetail) *ApiResponse[ResponseScenarioDetail] {
	if req.ScenarioId <= 0 {
		return NewApiResponse[ResponseScenarioDetail](&ErrIllegalParam, Unsatisfied, nil)
	}
	scenario, res := CallDBFuncAndCheckError[operation.ScheduleScenario, ResponseScenarioDetail](func() (*operation.ScheduleScenario, error) {
		return planService.scheduleOperation.GetScenarioById(req.ScenarioId)
	})
	if res != nil {
		return res
	}
	allocations, err := planService.scheduleOperation.GetAllocations(scenario.ID)
	if err != nil {
		return NewApiResponse[ResponseScenarioDetail](&ErrDatabaseFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetScenario, Unsatisfied, &ResponseScenarioDetail{
		Scenario:    scenario,
		Allocations: allocations,
	})
}

var (
	SuccessUploadSchedule = ApiStatus{StatusName: "UPLOAD_SCHEDULE_SUCCESS", Description: "上传航班计划成功", HttpCode: Ok}
	ErrScheduleEmpty      = ApiStatus{StatusName: "SCHEDULE_EMPTY", Description: "航班计划中没有有效航班", HttpCode: BadRequest}
	ErrScheduleTooLarge   = ApiStatus{StatusName: "SCHEDULE_TOO_LARGE", Description: "航班计划行数超过上限", HttpCode: BadRequest}
	ErrScheduleRead       = ApiStatus{StatusName: "SCHEDULE_READ_ERROR", Description: "航班计划读取失败", HttpCode: BadRequest}
)

// parseScheduleRow 解析一行航班计划, 格式:
// airline,number,registration,scheduled_time,nature,aircraft_type,counterpart,seats
func parseScheduleRow(record []string, scenario *operation.ScheduleScenario, day time.Time) *operation.Flight {
	if len(record) < 7 {
		return nil
	}
	airline := strings.ToUpper(strings.TrimSpace(record[0]))
	number := strings.ToUpper(strings.TrimSpace(record[1]))
	if airline == "" || number == "" {
		return nil
	}
	scheduledTime, err := utils.CombineDayClock(day, strings.TrimSpace(record[3]))
	if err != nil {
		return nil
	}
	var nature operation.FlightNature
	switch strings.ToLower(strings.TrimSpace(record[4])) {
	case "arrival", "a":
		nature = operation.NatureArrival
	case "departure", "d":
		nature = operation.NatureDeparture
	default:
		return nil
	}
	typeCode := strings.ToUpper(strings.TrimSpace(record[5]))
	if typeCode == "" {
		return nil
	}
	seats := 0
	if len(record) > 7 {
		seats, _ = strconv.Atoi(strings.TrimSpace(record[7]))
	}
	return &operation.Flight{
		ScenarioID:       scenario.ID,
		Airline:          airline,
		Number:           number,
		Registration:     strings.ToUpper(strings.TrimSpace(record[2])),
		ScheduledTime:    scheduledTime,
		Nature:           int(nature),
		AircraftTypeCode: typeCode,
		CounterpartCode:  strings.ToUpper(strings.TrimSpace(record[6])),
		SeatCapacity:     seats,
	}
}

func (planService *PlanService) UploadSchedule(req *RequestUploadSchedule) *ApiResponse[ResponseUploadSchedule] {
	if req.ScenarioId <= 0 || req.File == nil {
		return NewApiResponse[ResponseUploadSchedule](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseUploadSchedule](planService.userOperation, req.Uid, operation.ScheduleUpload); res != nil {
		return res
	}
	scenario, res := CallDBFuncAndCheckError[operation.ScheduleScenario, ResponseUploadSchedule](func() (*operation.ScheduleScenario, error) {
		return planService.scheduleOperation.GetScenarioById(req.ScenarioId)
	})
	if res != nil {
		return res
	}
	if operation.ScenarioStatus(scenario.Status) == operation.ScenarioAllocating {
		return NewApiResponse[ResponseUploadSchedule](&ErrScenarioState, Unsatisfied, nil)
	}
	day, err := time.ParseInLocation(global.DayLayout, scenario.Day, time.UTC)
	if err != nil {
		return NewApiResponse[ResponseUploadSchedule](&ErrScenarioDay, Unsatisfied, nil)
	}

	aircraftTypes, err := planService.referenceOperation.GetAircraftTypes()
	if err != nil {
		return NewApiResponse[ResponseUploadSchedule](&ErrDatabaseFail, Unsatisfied, nil)
	}
	knownTypes := make(map[string]struct{}, len(aircraftTypes))
	for _, aircraftType := range aircraftTypes {
		knownTypes[aircraftType.IcaoCode] = struct{}{}
	}

	storeInfo, apiStatus := planService.storeService.SaveScheduleFile(req.File)
	if apiStatus != nil {
		return NewApiResponse[ResponseUploadSchedule](apiStatus, Unsatisfied, nil)
	}
	accessPath, apiStatus := planService.storeService.AccessUrl(storeInfo)
	if apiStatus != nil {
		return NewApiResponse[ResponseUploadSchedule](apiStatus, Unsatisfied, nil)
	}

	src, err := req.File.Open()
	if err != nil {
		planService.logger.ErrorF("PlanService.UploadSchedule open file error: %v", err)
		return NewApiResponse[ResponseUploadSchedule](&ErrScheduleRead, Unsatisfied, nil)
	}
	defer func(src io.Closer) {
		_ = src.Close()
	}(src)

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	flights := make([]*operation.Flight, 0)
	accepted, rejected, rows := 0, 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rejected++
			continue
		}
		rows++
		if rows > planService.config.Limits.ScheduleRowsMax {
			return NewApiResponse[ResponseUploadSchedule](&ErrScheduleTooLarge, Unsatisfied, nil)
		}
		// 跳过表头
		if rows == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "airline") {
			continue
		}
		flight := parseScheduleRow(record, scenario, day)
		if flight == nil {
			rejected++
			continue
		}
		if _, ok := knownTypes[flight.AircraftTypeCode]; !ok {
			rejected++
			continue
		}
		flights = append(flights, flight)
		accepted++
	}

	if accepted == 0 {
		return NewApiResponse[ResponseUploadSchedule](&ErrScheduleEmpty, Unsatisfied, nil)
	}

	if _, res := CallDBFuncAndCheckError[interface{}, ResponseUploadSchedule](func() (*interface{}, error) {
		return nil, planService.scheduleOperation.AddFlights(flights)
	}); res != nil {
		return res
	}

	auditLog := planService.auditLogOperation.NewAuditLog(
		operation.ScheduleUploaded,
		req.Uid,
		fmt.Sprintf("scenario(%d)", scenario.ID),
		req.Ip,
		req.UserAgent,
		&operation.ChangeDetail{Field: "flights", NewValue: fmt.Sprintf("accepted=%d rejected=%d", accepted, rejected)},
	)
	if err := planService.auditLogOperation.SaveAuditLog(auditLog); err != nil {
		planService.logger.WarnF("Fail to save schedule upload audit log: %v", err)
	}

	return NewApiResponse(&SuccessUploadSchedule, Unsatisfied, &ResponseUploadSchedule{
		Accepted:   accepted,
		Rejected:   rejected,
		AccessPath: accessPath,
	})
}

var (
	SuccessRunAllocation = ApiStatus{StatusName: "RUN_ALLOCATION_SUCCESS", Description: "机位分配运行完成", HttpCode: Ok}
	ErrPlanConfig        = ApiStatus{StatusName: "PLAN_CONFIG_ERROR", Description: "规划配置不合法", HttpCode: BadRequest}
	ErrPlanData          = ApiStatus{StatusName: "PLAN_DATA_ERROR", Description: "规划基础数据不完整", HttpCode: BadRequest}
	ErrPlanCancelled     = ApiStatus{StatusName: "PLAN_CANCELLED", Description: "规划运行被取消", HttpCode: BadRequest}
	ErrPlanInternal      = ApiStatus{StatusName: "PLAN_INTERNAL_ERROR", Description: "规划运行失败", HttpCode: ServerInternalError}
)

func planErrorStatus(err error) *ApiStatus {
	switch planner.KindOf(err) {
	case planner.ConfigError:
		return &ErrPlanConfig
	case planner.DataError:
		return &ErrPlanData
	case planner.Cancelled:
		return &ErrPlanCancelled
	default:
		return &ErrPlanInternal
	}
}

func (planService *PlanService) setRunState(scenarioId uint, progress *planner.Progress, status string) {
	planService.mu.Lock()
	defer planService.mu.Unlock()
	planService.runs[scenarioId] = &runState{progress: progress, status: status}
}

func (planService *PlanService) RunAllocation(req *RequestRunAllocation) *ApiResponse[ResponseRunAllocation] {
	if req.ScenarioId <= 0 {
		return NewApiResponse[ResponseRunAllocation](&ErrIllegalParam, Unsatisfied, nil)
	}
	if _, res := GetUserAndCheckPermission[ResponseRunAllocation](planService.userOperation, req.Uid, operation.PlanRun); res != nil {
		return res
	}
	scenario, res := CallDBFuncAndCheckError[operation.ScheduleScenario, ResponseRunAllocation](func() (*operation.ScheduleScenario, error) {
		return planService.scheduleOperation.GetScenarioById(req.ScenarioId)
	})
	if res != nil {
		return res
	}
	day, err := time.ParseInLocation(global.DayLayout, scenario.Day, time.UTC)
	if err != nil {
		return NewApiResponse[ResponseRunAllocation](&ErrScenarioDay, Unsatisfied, nil)
	}

	// 状态机保证同一方案不会并发运行
	if _, res := CallDBFuncAndCheckError[interface{}, ResponseRunAllocation](func() (*interface{}, error) {
		return nil, planService.scheduleOperation.UpdateScenarioStatus(scenario, operation.ScenarioAllocating)
	}); res != nil {
		return res
	}

	startLog := planService.auditLogOperation.NewAuditLog(
		operation.AllocationRunStarted,
		req.Uid,
		fmt.Sprintf("scenario(%d)", scenario.ID),
		req.Ip,
		req.UserAgent,
		nil,
	)
	if err := planService.auditLogOperation.SaveAuditLog(startLog); err != nil {
		planService.logger.WarnF("Fail to save allocation audit log: %v", err)
	}

	result, apiStatus := planService.runAllocation(scenario, day, req.Displacement || planService.plannerConfig.EnableDisplacement)
	finalStatus := operation.ScenarioAllocated
	if apiStatus != nil {
		finalStatus = operation.ScenarioFailed
	}
	if err := planService.scheduleOperation.UpdateScenarioStatus(scenario, finalStatus); err != nil {
		planService.logger.ErrorF("Fail to update scenario %d status: %v", scenario.ID, err)
	}
	planService.mu.Lock()
	if state, ok := planService.runs[scenario.ID]; ok {
		state.status = finalStatus.String()
	}
	planService.mu.Unlock()

	auditLog := planService.auditLogOperation.NewAuditLog(
		operation.AllocationRunFinished,
		req.Uid,
		fmt.Sprintf("scenario(%d)", scenario.ID),
		req.Ip,
		req.UserAgent,
		planService.runDetail(result),
	)
	if err := planService.auditLogOperation.SaveAuditLog(auditLog); err != nil {
		planService.logger.WarnF("Fail to save allocation audit log: %v", err)
	}

	if apiStatus != nil {
		return NewApiResponse[ResponseRunAllocation](apiStatus, Unsatisfied, nil)
	}

	return NewApiResponse(&SuccessRunAllocation, Unsatisfied, &ResponseRunAllocation{
		Scenario:    scenario,
		Assignments: result.Assignments,
		Unallocated: result.Unallocated,
		Stands:      result.StandUtilisation,
		Slots:       result.SlotUtilisation,
		Displaced:   result.Displaced,
	})
}

func (planService *PlanService) runDetail(result *planner.AllocationResult) *operation.ChangeDetail {
	if result == nil {
		return &operation.ChangeDetail{Field: "result", NewValue: "failed"}
	}
	return &operation.ChangeDetail{
		Field: "result",
		NewValue: fmt.Sprintf("assigned=%d unallocated=%d displaced=%d",
			len(result.Assignments), len(result.Unallocated), result.Displaced),
	}
}

// runAllocation 构建快照与槽位网格并执行分配, 结果以事务整体落库
func (planService *PlanService) runAllocation(scenario *operation.ScheduleScenario, day time.Time, displacement bool) (*planner.AllocationResult, *ApiStatus) {
	data, err := planService.referenceOperation.GetReferenceData()
	if err != nil {
		return nil, &ErrDatabaseFail
	}
	snapshot, planError := planner.NewSnapshot(data)
	if planError != nil {
		return nil, planErrorStatus(planError)
	}
	grid, planError := planner.NewSlotGrid(day, snapshot.Settings())
	if planError != nil {
		return nil, planErrorStatus(planError)
	}
	maintenance, err := planService.maintenanceOperation.GetActiveRequestsBetween(grid.Start(), grid.End())
	if err != nil {
		return nil, &ErrDatabaseFail
	}

	allocator := planner.NewStandAllocator(planService.logger, snapshot, grid, planner.AllocatorOptions{
		EnableDisplacement: displacement,
	})
	planService.setRunState(scenario.ID, allocator.Progress(), operation.ScenarioAllocating.String())

	result, err := allocator.Allocate(context.Background(), scenario.Flights, maintenance)
	if err != nil {
		planService.logger.ErrorF("Allocation run for scenario %d failed: %v", scenario.ID, err)
		return nil, planErrorStatus(err)
	}

	allocations := make([]*operation.Allocation, 0, len(result.Assignments))
	for _, assignment := range result.Assignments {
		for _, flightId := range assignment.FlightIDs {
			allocations = append(allocations, &operation.Allocation{
				ScenarioID: scenario.ID,
				FlightID:   flightId,
				StandID:    assignment.StandID,
				StartTime:  assignment.Start,
				EndTime:    assignment.End,
				Score:      assignment.Score,
			})
		}
	}
	if err := planService.scheduleOperation.ReplaceAllocations(scenario.ID, allocations); err != nil {
		return nil, &ErrDatabaseFail
	}
	return result, nil
}

var (
	SuccessGetProgress = ApiStatus{StatusName: "GET_PROGRESS_SUCCESS", Description: "获取运行进度成功", HttpCode: Ok}
)

func (planService *PlanService) GetRunProgress(req *RequestRunProgress) *ApiResponse[ResponseRunProgress] {
	if req.ScenarioId <= 0 {
		return NewApiResponse[ResponseRunProgress](&ErrIllegalParam, Unsatisfied, nil)
	}
	planService.mu.RLock()
	state, ok := planService.runs[req.ScenarioId]
	planService.mu.RUnlock()
	if ok {
		return NewApiResponse(&SuccessGetProgress, Unsatisfied, &ResponseRunProgress{
			Status:           state.status,
			FlightsProcessed: state.progress.FlightsProcessed(),
			SlotsProcessed:   state.progress.SlotsProcessed(),
		})
	}
	scenario, res := CallDBFuncAndCheckError[operation.ScheduleScenario, ResponseRunProgress](func() (*operation.ScheduleScenario, error) {
		return planService.scheduleOperation.GetScenarioById(req.ScenarioId)
	})
	if res != nil {
		return res
	}
	return NewApiResponse(&SuccessGetProgress, Unsatisfied, &ResponseRunProgress{
		Status: operation.ScenarioStatus(scenario.Status).String(),
	})
}

var (
	SuccessCapacityReport = ApiStatus{StatusName: "CAPACITY_REPORT_SUCCESS", Description: "容量报表生成成功", HttpCode: Ok}
	ErrCapacityMode       = ApiStatus{StatusName: "CAPACITY_MODE_ERROR", Description: "不支持的容量透视维度", HttpCode: BadRequest}
)

func (planService *PlanService) CapacityReport(req *RequestCapacityReport) *ApiResponse[ResponseCapacityReport] {
	day, err := time.ParseInLocation(global.DayLayout, req.Day, time.UTC)
	if err != nil {
		return NewApiResponse[ResponseCapacityReport](&ErrScenarioDay, Unsatisfied, nil)
	}
	mode := planner.CapacityMode(req.Mode)
	if req.Mode == "" {
		mode = planner.ModeBySizeCategory
	}
	if !mode.IsValid() {
		return NewApiResponse[ResponseCapacityReport](&ErrCapacityMode, Unsatisfied, nil)
	}
	data, err := planService.referenceOperation.GetReferenceData()
	if err != nil {
		return NewApiResponse[ResponseCapacityReport](&ErrDatabaseFail, Unsatisfied, nil)
	}
	snapshot, planError := planner.NewSnapshot(data)
	if planError != nil {
		return NewApiResponse[ResponseCapacityReport](planErrorStatus(planError), Unsatisfied, nil)
	}
	grid, planError := planner.NewSlotGrid(day, snapshot.Settings())
	if planError != nil {
		return NewApiResponse[ResponseCapacityReport](planErrorStatus(planError), Unsatisfied, nil)
	}
	calculator := planner.NewCapacityCalculator(planService.logger, snapshot, grid)
	result, err := calculator.Calculate(context.Background(), mode)
	if err != nil {
		return NewApiResponse[ResponseCapacityReport](planErrorStatus(err), Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessCapacityReport, Unsatisfied, (*ResponseCapacityReport)(result))
}

var (
	SuccessMaintenanceImpact = ApiStatus{StatusName: "MAINTENANCE_IMPACT_SUCCESS", Description: "维护影响评估完成", HttpCode: Ok}
	ErrImpactRange           = ApiStatus{StatusName: "IMPACT_RANGE_ERROR", Description: "评估区间不合法", HttpCode: BadRequest}
)

func (planService *PlanService) MaintenanceImpact(req *RequestMaintenanceImpact) *ApiResponse[ResponseMaintenanceImpact] {
	from, err := time.ParseInLocation(global.DayLayout, req.From, time.UTC)
	if err != nil {
		return NewApiResponse[ResponseMaintenanceImpact](&ErrImpactRange, Unsatisfied, nil)
	}
	to, err := time.ParseInLocation(global.DayLayout, req.To, time.UTC)
	if err != nil {
		return NewApiResponse[ResponseMaintenanceImpact](&ErrImpactRange, Unsatisfied, nil)
	}
	data, err := planService.referenceOperation.GetReferenceData()
	if err != nil {
		return NewApiResponse[ResponseMaintenanceImpact](&ErrDatabaseFail, Unsatisfied, nil)
	}
	snapshot, planError := planner.NewSnapshot(data)
	if planError != nil {
		return NewApiResponse[ResponseMaintenanceImpact](planErrorStatus(planError), Unsatisfied, nil)
	}
	requests, err := planService.maintenanceOperation.GetActiveRequestsBetween(from, to.Add(24*time.Hour))
	if err != nil {
		return NewApiResponse[ResponseMaintenanceImpact](&ErrDatabaseFail, Unsatisfied, nil)
	}
	integrator := planner.NewImpactIntegrator(planService.logger, snapshot)
	result, err := integrator.Integrate(context.Background(), from, to, requests)
	if err != nil {
		return NewApiResponse[ResponseMaintenanceImpact](planErrorStatus(err), Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessMaintenanceImpact, Unsatisfied, (*ResponseMaintenanceImpact)(result))
}
