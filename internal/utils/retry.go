package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// DoWithRetryDelays 按 delays 逐次执行 fn，第 i 次执行前等待 delays[i]。
// retryable 返回 false 时立即放弃；返回值为最后一次错误与实际执行次数。
func DoWithRetryDelays(ctx context.Context, delays []time.Duration, retryable func(error) bool, fn func(attempt int) error) (int, error) {
	if len(delays) == 0 {
		delays = []time.Duration{0}
	}
	var err error
	attempts := 0
	for i, d := range delays {
		if d > 0 {
			select {
			case <-ctx.Done():
				return attempts, fmt.Errorf("retry aborted: %w", ctx.Err())
			case <-time.After(d):
			}
		}
		attempts++
		err = fn(i + 1)
		if err == nil {
			return attempts, nil
		}
		if retryable != nil && !retryable(err) {
			return attempts, err
		}
		if i < len(delays)-1 {
			logrus.WithError(err).Warnf("[RETRY] attempt %d/%d failed", i+1, len(delays))
		}
	}
	return attempts, err
}
