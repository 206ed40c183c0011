package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aff-commission-api/internal/constant"
	mainmodel "aff-commission-api/internal/model/main"
)

type AffiliateDao struct {
	db *gorm.DB
}

func NewAffiliateDao(db *gorm.DB) *AffiliateDao {
	return &AffiliateDao{db: db}
}

// GetAffiliate 查询推广员；不存在或已软删除时返回 nil, nil
func (d *AffiliateDao) GetAffiliate(ctx context.Context, id string) (*mainmodel.Affiliate, error) {
	var a mainmodel.Affiliate
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError).Wrap(err)
	}
	return &a, nil
}
