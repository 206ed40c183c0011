package mainmodel

import (
	"time"

	"gorm.io/gorm"
)

// Affiliate 推广员；ReferredBy 指向推荐人（上级），关系在建网时保证无环
type Affiliate struct {
	ID           string         `gorm:"column:id;primaryKey;size:36" json:"id"`
	ReferralCode string         `gorm:"column:referral_code;size:8;not null;uniqueIndex" json:"referralCode"` // 推荐码 6-8 位字母数字
	Name         string         `gorm:"column:name;size:120" json:"name"`
	Status       string         `gorm:"column:status;size:16;not null;default:pending" json:"status"`
	ReferredBy   *string        `gorm:"column:referred_by;size:36;index" json:"referredBy,omitempty"`
	WalletID     *string        `gorm:"column:wallet_id;size:64" json:"walletId,omitempty"` // 钱包服务商账户
	CreatedAt    time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}
