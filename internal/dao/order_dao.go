package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"aff-commission-api/internal/constant"
	mainmodel "aff-commission-api/internal/model/main"
)

type OrderDao struct {
	db *gorm.DB
}

func NewOrderDao(db *gorm.DB) *OrderDao {
	return &OrderDao{db: db}
}

// GetOrder 查询订单；不存在时返回 nil, nil
func (d *OrderDao) GetOrder(ctx context.Context, id string) (*mainmodel.Order, error) {
	var o mainmodel.Order
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError).Wrap(err)
	}
	return &o, nil
}

// MarkPaymentStatus 标注订单支付状态（逾期等），不涉及佣金
func (d *OrderDao) MarkPaymentStatus(ctx context.Context, id, status string) (bool, error) {
	tx := d.db.WithContext(ctx).Model(&mainmodel.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return false, constant.NewError(constant.CodeDatabaseError).Wrap(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}
