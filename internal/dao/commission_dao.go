package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dto"
	"aff-commission-api/internal/idgen"
	mainmodel "aff-commission-api/internal/model/main"
)

var errSplitExists = errors.New("commission split already exists")

type CommissionDao struct {
	db *gorm.DB
}

func NewCommissionDao(db *gorm.DB) *CommissionDao {
	return &CommissionDao{db: db}
}

// HasSplit 订单是否已存在（未删除的）分佣汇总
func (d *CommissionDao) HasSplit(ctx context.Context, orderID string) (bool, error) {
	var cnt int64
	if err := d.db.WithContext(ctx).Model(&mainmodel.CommissionSplit{}).
		Where("order_id = ?", orderID).Count(&cnt).Error; err != nil {
		return false, constant.NewError(constant.CodeDatabaseError).Wrap(err)
	}
	return cnt > 0, nil
}

// GetSplit 查询订单分佣汇总；不存在时返回 nil, nil
func (d *CommissionDao) GetSplit(ctx context.Context, orderID string) (*mainmodel.CommissionSplit, error) {
	var s mainmodel.CommissionSplit
	err := d.db.WithContext(ctx).Where("order_id = ?", orderID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError).Wrap(err)
	}
	return &s, nil
}

// ListCommissions 查询订单全部佣金记录（含已取消）
func (d *CommissionDao) ListCommissions(ctx context.Context, orderID string) ([]mainmodel.Commission, error) {
	var out []mainmodel.Commission
	if err := d.db.WithContext(ctx).Where("order_id = ?", orderID).Order("level").Find(&out).Error; err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError).Wrap(err)
	}
	return out, nil
}

// CreateSplit 在同一事务内写入分佣汇总与各受益位佣金。
// 返回 created=false 且 err=nil 表示并发的重复投递已先写入（唯一键冲突视为成功）。
func (d *CommissionDao) CreateSplit(ctx context.Context, orderID string, res dto.SplitResult) (bool, error) {
	now := time.Now()
	split := buildSplit(orderID, res, now)
	rows := buildCommissions(orderID, res, now)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&split).Error; err != nil {
			if IsDuplicateKey(err) {
				return errSplitExists
			}
			return err
		}
		return tx.Create(&rows).Error
	})
	if errors.Is(err, errSplitExists) {
		return false, nil
	}
	if err != nil {
		return false, constant.NewError(constant.CodeCommissionPersist).Wrap(err)
	}
	return true, nil
}

// CancelOrderCommissions 将订单下未取消的佣金置为 cancelled，重复调用无副作用
func (d *CommissionDao) CancelOrderCommissions(ctx context.Context, orderID string) (int64, error) {
	tx := d.db.WithContext(ctx).Model(&mainmodel.Commission{}).
		Where("order_id = ? AND status <> ?", orderID, constant.CommissionStatusCancelled).
		Updates(map[string]interface{}{
			"status":     constant.CommissionStatusCancelled,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return 0, constant.NewError(constant.CodeDatabaseError).Wrap(tx.Error)
	}
	return tx.RowsAffected, nil
}

// IsDuplicateKey 唯一键冲突（MySQL 1062 / SQLite UNIQUE）
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func buildSplit(orderID string, res dto.SplitResult, now time.Time) mainmodel.CommissionSplit {
	return mainmodel.CommissionSplit{
		ID:                    idgen.New(),
		OrderID:               orderID,
		OrderValueCents:       res.OrderValueCents,
		N1AffiliateID:         derefString(res.N1.BeneficiaryID),
		N1Percentage:          res.N1.Percentage,
		N1ValueCents:          res.N1.ValueCents,
		N2AffiliateID:         res.N2.BeneficiaryID,
		N2Percentage:          res.N2.Percentage,
		N2ValueCents:          res.N2.ValueCents,
		N3AffiliateID:         res.N3.BeneficiaryID,
		N3Percentage:          res.N3.Percentage,
		N3ValueCents:          res.N3.ValueCents,
		HouseAPercentage:      res.HouseA.Percentage,
		HouseAValueCents:      res.HouseA.ValueCents,
		HouseBPercentage:      res.HouseB.Percentage,
		HouseBValueCents:      res.HouseB.ValueCents,
		TotalValueCents:       res.TotalCents,
		RedistributionApplied: res.RedistributionApplied,
		CreatedAt:             now,
	}
}

func buildCommissions(orderID string, res dto.SplitResult, now time.Time) []mainmodel.Commission {
	slots := res.PersistableSlots()
	rows := make([]mainmodel.Commission, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, mainmodel.Commission{
			ID:          idgen.New(),
			OrderID:     orderID,
			AffiliateID: s.BeneficiaryID,
			Level:       s.Level,
			Percentage:  s.Percentage,
			ValueCents:  s.ValueCents,
			Status:      constant.CommissionStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return rows
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
