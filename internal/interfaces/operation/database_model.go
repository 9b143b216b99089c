package operation

import (
	"time"
)

// SizeCategory ICAO机型尺寸分类, Rank按字母码严格递增 (A < B < ... < F)
type SizeCategory struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Code        string    `gorm:"size:2;uniqueIndex;not null" json:"code"`
	Rank        int       `gorm:"uniqueIndex;not null" json:"rank"`
	MinWingspan float64   `gorm:"not null" json:"min_wingspan"`
	MaxWingspan float64   `gorm:"not null" json:"max_wingspan"`
	MinLength   float64   `gorm:"not null" json:"min_length"`
	MaxLength   float64   `gorm:"not null" json:"max_length"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type AircraftType struct {
	ID             uint          `gorm:"primarykey" json:"id"`
	IcaoCode       string        `gorm:"size:8;uniqueIndex;not null" json:"icao_code"`
	IataCode       string        `gorm:"size:4;not null" json:"iata_code"`
	WingspanMeters float64       `gorm:"not null" json:"wingspan_meters"`
	LengthMeters   float64       `gorm:"not null" json:"length_meters"`
	SizeCategoryID uint          `gorm:"index;not null" json:"size_category_id"`
	SizeCategory   *SizeCategory `gorm:"foreignKey:SizeCategoryID;references:ID" json:"size_category,omitempty"`
	CreatedAt      time.Time     `json:"-"`
	UpdatedAt      time.Time     `json:"-"`
}

type Terminal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Code      string    `gorm:"size:8;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Piers     []*Pier   `gorm:"foreignKey:TerminalID;references:ID" json:"piers,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Pier struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	TerminalID uint      `gorm:"uniqueIndex:terminalPier;not null" json:"terminal_id"`
	Code       string    `gorm:"size:8;uniqueIndex:terminalPier;not null" json:"code"`
	Name       string    `gorm:"size:64;not null" json:"name"`
	Stands     []*Stand  `gorm:"foreignKey:PierID;references:ID" json:"stands,omitempty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

type Stand struct {
	ID                uint                       `gorm:"primarykey" json:"id"`
	PierID            uint                       `gorm:"uniqueIndex:pierStand;not null" json:"pier_id"`
	Code              string                     `gorm:"size:8;uniqueIndex:pierStand;not null" json:"code"`
	MaxWingspanMeters float64                    `gorm:"not null" json:"max_wingspan_meters"`
	MaxLengthMeters   float64                    `gorm:"not null" json:"max_length_meters"`
	MaxSizeCategoryID uint                       `gorm:"index;not null" json:"max_size_category_id"`
	MaxSizeCategory   *SizeCategory              `gorm:"foreignKey:MaxSizeCategoryID;references:ID" json:"max_size_category,omitempty"`
	HasJetbridge      bool                       `gorm:"default:0;not null" json:"has_jetbridge"`
	Active            bool                       `gorm:"default:1;not null" json:"active"`
	Latitude          *float64                   `json:"latitude,omitempty"`
	Longitude         *float64                   `json:"longitude,omitempty"`
	Constraints       []*StandAircraftConstraint `gorm:"foreignKey:StandID;references:ID" json:"constraints,omitempty"`
	Adjacencies       []*StandAdjacency          `gorm:"foreignKey:StandID;references:ID" json:"adjacencies,omitempty"`
	CreatedAt         time.Time                  `json:"-"`
	UpdatedAt         time.Time                  `json:"-"`
}

// StandAircraftConstraint 机位机型白名单/黑名单, 优先级高于尺寸分类推断
type StandAircraftConstraint struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	StandID        uint      `gorm:"uniqueIndex:standType;not null" json:"stand_id"`
	AircraftTypeID uint      `gorm:"uniqueIndex:standType;not null" json:"aircraft_type_id"`
	Allowed        bool      `gorm:"not null" json:"allowed"`
	Reason         string    `gorm:"size:128;not null" json:"reason"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// StandAdjacency 定向邻接限制: StandID被TriggerSizeCode及以上机型占用时,
// AdjacentStandID受RestrictionKind约束
type StandAdjacency struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	StandID             uint      `gorm:"index;not null" json:"stand_id"`
	AdjacentStandID     uint      `gorm:"index;not null" json:"adjacent_stand_id"`
	RestrictionKind     int       `gorm:"not null" json:"restriction_kind"`
	TriggerSizeCode     string    `gorm:"size:2;not null" json:"trigger_size_code"`
	MaxAdjacentSizeCode string    `gorm:"size:2" json:"max_adjacent_size_code"`
	CreatedAt           time.Time `json:"-"`
	UpdatedAt           time.Time `json:"-"`
}

type TurnaroundRule struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	AircraftTypeID uint      `gorm:"uniqueIndex;not null" json:"aircraft_type_id"`
	MinimumMinutes int       `gorm:"not null" json:"minimum_minutes"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// OperationalSettings 全局运行参数, 数据库中至多一行
type OperationalSettings struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	SlotDurationMinutes int       `gorm:"not null" json:"slot_duration_minutes"`
	BlockSizeSlots      int       `gorm:"not null" json:"block_size_slots"`
	DayStart            string    `gorm:"size:5;not null" json:"day_start"`
	DayEnd              string    `gorm:"size:5;not null" json:"day_end"`
	DefaultGapMinutes   int       `gorm:"not null" json:"default_gap_minutes"`
	CreatedAt           time.Time `json:"-"`
	UpdatedAt           time.Time `json:"-"`
}

type AirlineTerminalAllocation struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	AirlineCode string    `gorm:"size:3;uniqueIndex;not null" json:"airline_code"`
	TerminalID  uint      `gorm:"index;not null" json:"terminal_id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type ScheduleScenario struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Day       string    `gorm:"size:10;index;not null" json:"day"`
	Status    int       `gorm:"default:0;not null" json:"status"`
	Flights   []*Flight `gorm:"foreignKey:ScenarioID;references:ID" json:"flights,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Flight struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	ScenarioID       uint      `gorm:"index;not null" json:"scenario_id"`
	Airline          string    `gorm:"size:3;not null" json:"airline"`
	Number           string    `gorm:"size:8;not null" json:"number"`
	Registration     string    `gorm:"size:12" json:"registration"`
	ScheduledTime    time.Time `gorm:"not null" json:"scheduled_time"`
	Nature           int       `gorm:"not null" json:"nature"`
	AircraftTypeCode string    `gorm:"size:8;not null" json:"aircraft_type_code"`
	CounterpartCode  string    `gorm:"size:4;not null" json:"counterpart_code"`
	SeatCapacity     int       `gorm:"default:0;not null" json:"seat_capacity"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

type Allocation struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ScenarioID uint      `gorm:"index;not null" json:"scenario_id"`
	FlightID   uint      `gorm:"index;not null" json:"flight_id"`
	StandID    uint      `gorm:"index;not null" json:"stand_id"`
	StartTime  time.Time `gorm:"not null" json:"start_time"`
	EndTime    time.Time `gorm:"not null" json:"end_time"`
	Score      float64   `gorm:"not null" json:"score"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

type MaintenanceRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StandID   uint      `gorm:"index;not null" json:"stand_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    int       `gorm:"default:1;not null" json:"status"`
	Requester uint      `gorm:"index;not null" json:"requester"`
	Reason    string    `gorm:"size:256;not null" json:"reason"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type User struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	Username   string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"size:128;not null" json:"-"`
	Permission int64     `gorm:"default:0" json:"permission"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

type AuditLog struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	EventType     EventType `gorm:"size:48;index;not null" json:"event_type"`
	Subject       uint      `gorm:"index;not null" json:"subject"`
	Object        string    `gorm:"size:64;not null" json:"object"`
	Ip            string    `gorm:"size:45;not null" json:"ip"`
	UserAgent     string    `gorm:"size:256;not null" json:"user_agent"`
	ChangeDetails string    `gorm:"type:text" json:"change_details"`
	CreatedAt     time.Time `json:"created_at"`
}
