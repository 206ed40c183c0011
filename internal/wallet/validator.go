package wallet

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const cacheKeyPrefix = "aff:wallet:active:"

// Provider 钱包状态来源
type Provider interface {
	IsWalletActive(ctx context.Context, walletID string) (bool, error)
}

// Validator 钱包可用性校验，Redis 读穿缓存 + singleflight 防击穿
type Validator struct {
	provider Provider
	rdb      *redis.Client
	ttl      time.Duration
	group    singleflight.Group
	log      *logrus.Logger
}

func NewValidator(provider Provider, rdb *redis.Client, ttl time.Duration, log *logrus.Logger) *Validator {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Validator{provider: provider, rdb: rdb, ttl: ttl, log: log}
}

func cacheKey(walletID string) string {
	return cacheKeyPrefix + walletID
}

// IsActive 先查缓存，未命中时请求服务商并回写；Redis 故障时直接走服务商
func (v *Validator) IsActive(ctx context.Context, walletID string) (bool, error) {
	key := cacheKey(walletID)

	result, err, _ := v.group.Do(key, func() (interface{}, error) {
		cached, err := v.rdb.Get(ctx, key).Result()
		switch {
		case err == nil:
			return cached == "1", nil
		case err != redis.Nil:
			v.log.WithError(err).WithField("wallet_id", walletID).Warn("[WALLET] cache read failed")
		}

		active, err := v.provider.IsWalletActive(ctx, walletID)
		if err != nil {
			return false, err
		}
		val := "0"
		if active {
			val = "1"
		}
		if err := v.rdb.Set(ctx, key, val, v.ttl).Err(); err != nil {
			v.log.WithError(err).WithField("wallet_id", walletID).Warn("[WALLET] cache write failed")
		}
		return active, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// Invalidate 钱包状态变更时清除缓存
func (v *Validator) Invalidate(ctx context.Context, walletID string) error {
	return v.rdb.Del(ctx, cacheKey(walletID)).Err()
}
