package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/idgen"
	mainmodel "aff-commission-api/internal/model/main"
)

type AlertDao struct {
	db *gorm.DB
}

func NewAlertDao(db *gorm.DB) *AlertDao {
	return &AlertDao{db: db}
}

// CreateAlert 写入支付告警记录
func (d *AlertDao) CreateAlert(ctx context.Context, orderID, eventType, level, message string) error {
	if len(message) > 500 {
		message = message[:500]
	}
	alert := mainmodel.PaymentAlert{
		ID:        idgen.New(),
		OrderID:   orderID,
		EventType: eventType,
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := d.db.WithContext(ctx).Create(&alert).Error; err != nil {
		return constant.NewError(constant.CodeDatabaseError).Wrap(err)
	}
	return nil
}

// ListAlerts 按订单查询告警
func (d *AlertDao) ListAlerts(ctx context.Context, orderID string) ([]mainmodel.PaymentAlert, error) {
	var out []mainmodel.PaymentAlert
	if err := d.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at").Find(&out).Error; err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError).Wrap(err)
	}
	return out, nil
}
