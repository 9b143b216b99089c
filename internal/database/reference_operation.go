// Package database
package database

import (
	"context"
	"errors"
	"time"

	. "github.com/half-nothing/stand-planner/internal/interfaces/operation"
	"gorm.io/gorm"
)

type ReferenceOperation struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewReferenceOperation(db *gorm.DB, queryTimeout time.Duration) *ReferenceOperation {
	return &ReferenceOperation{db: db, queryTimeout: queryTimeout}
}

// GetReferenceData 在单个事务内读取全部基础数据, 保证快照一致性
func (referenceOperation *ReferenceOperation) GetReferenceData() (data *ReferenceData, err error) {
	data = &ReferenceData{}
	err = referenceOperation.db.Transaction(func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
		defer cancel()
		tx = tx.WithContext(ctx)

		settings := &OperationalSettings{}
		if err := tx.First(settings).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSettingsNotFound
			}
			return err
		}
		data.Settings = settings

		if err := tx.Find(&data.Terminals).Error; err != nil {
			return err
		}
		if err := tx.Find(&data.Piers).Error; err != nil {
			return err
		}
		if err := tx.Find(&data.Stands).Error; err != nil {
			return err
		}
		if err := tx.Find(&data.AircraftTypes).Error; err != nil {
			return err
		}
		if err := tx.Find(&data.SizeCategories).Error; err != nil {
			return err
		}
		if err := tx.Find(&data.TurnaroundRules).Error; err != nil {
			return err
		}
		if err := tx.Find(&data.Constraints).Error; err != nil {
			return err
		}
		if err := tx.Find(&data.Adjacencies).Error; err != nil {
			return err
		}
		return tx.Find(&data.AirlineAllocations).Error
	})
	return
}

func (referenceOperation *ReferenceOperation) GetTerminals() (terminals []*Terminal, err error) {
	terminals = make([]*Terminal, 0)
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).Preload("Piers").Find(&terminals).Error
	return
}

func (referenceOperation *ReferenceOperation) GetTerminalByCode(code string) (terminal *Terminal, err error) {
	terminal = &Terminal{}
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).
		Preload("Piers").
		Where("code = ?", code).
		First(terminal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrTerminalNotFound
	}
	return
}

func (referenceOperation *ReferenceOperation) GetPiers(terminalId uint) (piers []*Pier, err error) {
	piers = make([]*Pier, 0)
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).
		Preload("Stands").
		Where("terminal_id = ?", terminalId).
		Find(&piers).Error
	return
}

func (referenceOperation *ReferenceOperation) GetStands() (stands []*Stand, err error) {
	stands = make([]*Stand, 0)
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).
		Preload("Constraints").
		Preload("Adjacencies").
		Find(&stands).Error
	return
}

func (referenceOperation *ReferenceOperation) GetStandById(id uint) (stand *Stand, err error) {
	stand = &Stand{}
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).
		Preload("Constraints").
		Preload("Adjacencies").
		Where("id = ?", id).
		First(stand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrStandNotFound
	}
	return
}

func (referenceOperation *ReferenceOperation) GetAircraftTypes() (aircraftTypes []*AircraftType, err error) {
	aircraftTypes = make([]*AircraftType, 0)
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).Preload("SizeCategory").Find(&aircraftTypes).Error
	return
}

func (referenceOperation *ReferenceOperation) GetAircraftTypeByCode(code string) (aircraftType *AircraftType, err error) {
	aircraftType = &AircraftType{}
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).
		Preload("SizeCategory").
		Where("icao_code = ?", code).
		First(aircraftType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrAircraftTypeNotFound
	}
	return
}

func (referenceOperation *ReferenceOperation) GetSizeCategories() (categories []*SizeCategory, err error) {
	categories = make([]*SizeCategory, 0)
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).Order("rank").Find(&categories).Error
	return
}

func (referenceOperation *ReferenceOperation) GetOperationalSettings() (settings *OperationalSettings, err error) {
	settings = &OperationalSettings{}
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err = referenceOperation.db.WithContext(ctx).First(settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrSettingsNotFound
	}
	return
}

func (referenceOperation *ReferenceOperation) save(value interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	return referenceOperation.db.WithContext(ctx).Save(value).Error
}

func (referenceOperation *ReferenceOperation) SaveTerminal(terminal *Terminal) error {
	return referenceOperation.save(terminal)
}

func (referenceOperation *ReferenceOperation) SavePier(pier *Pier) error {
	return referenceOperation.save(pier)
}

func (referenceOperation *ReferenceOperation) SaveStand(stand *Stand) error {
	return referenceOperation.save(stand)
}

func (referenceOperation *ReferenceOperation) SaveAircraftType(aircraftType *AircraftType) error {
	return referenceOperation.save(aircraftType)
}

func (referenceOperation *ReferenceOperation) SaveSizeCategory(category *SizeCategory) error {
	return referenceOperation.save(category)
}

func (referenceOperation *ReferenceOperation) SaveTurnaroundRule(rule *TurnaroundRule) error {
	return referenceOperation.save(rule)
}

func (referenceOperation *ReferenceOperation) SaveStandConstraint(constraint *StandAircraftConstraint) error {
	return referenceOperation.save(constraint)
}

func (referenceOperation *ReferenceOperation) SaveStandAdjacency(adjacency *StandAdjacency) error {
	return referenceOperation.save(adjacency)
}

func (referenceOperation *ReferenceOperation) SaveAirlineAllocation(allocation *AirlineTerminalAllocation) error {
	return referenceOperation.save(allocation)
}

func (referenceOperation *ReferenceOperation) SaveOperationalSettings(settings *OperationalSettings) error {
	// 全局运行参数单行覆盖
	existing := &OperationalSettings{}
	ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
	defer cancel()
	err := referenceOperation.db.WithContext(ctx).First(existing).Error
	if err == nil {
		settings.ID = existing.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return referenceOperation.save(settings)
}

func (referenceOperation *ReferenceOperation) DeleteStand(id uint) error {
	return referenceOperation.db.Transaction(func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
		defer cancel()
		tx = tx.WithContext(ctx)

		result := tx.Delete(&Stand{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStandNotFound
		}
		if err := tx.Where("stand_id = ?", id).Delete(&StandAircraftConstraint{}).Error; err != nil {
			return err
		}
		return tx.Where("stand_id = ? OR adjacent_stand_id = ?", id, id).Delete(&StandAdjacency{}).Error
	})
}

func (referenceOperation *ReferenceOperation) DeleteAircraftType(id uint) error {
	return referenceOperation.db.Transaction(func(tx *gorm.DB) error {
		ctx, cancel := context.WithTimeout(context.Background(), referenceOperation.queryTimeout)
		defer cancel()
		tx = tx.WithContext(ctx)

		result := tx.Delete(&AircraftType{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAircraftTypeNotFound
		}
		if err := tx.Where("aircraft_type_id = ?", id).Delete(&TurnaroundRule{}).Error; err != nil {
			return err
		}
		return tx.Where("aircraft_type_id = ?", id).Delete(&StandAircraftConstraint{}).Error
	})
}
