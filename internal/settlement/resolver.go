package settlement

import (
	"context"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dto"
	mainmodel "aff-commission-api/internal/model/main"
)

// maxChainDepth 只有 N1..N3 直接参与分佣，更上层的比例进入重分配池
const maxChainDepth = 3

// AffiliateReader 推广员查询；不存在或已删除返回 nil, nil
type AffiliateReader interface {
	GetAffiliate(ctx context.Context, id string) (*mainmodel.Affiliate, error)
}

// ChainResolver 沿 referredBy 向上解析分佣链
type ChainResolver struct {
	affiliates AffiliateReader
}

func NewChainResolver(affiliates AffiliateReader) *ChainResolver {
	return &ChainResolver{affiliates: affiliates}
}

// Resolve 返回 {N1, N2?, N3?}；任一层上级缺失或已删除即从该层截断
func (r *ChainResolver) Resolve(ctx context.Context, sellerID string) (dto.ReferralChain, error) {
	var chain dto.ReferralChain

	seller, err := r.affiliates.GetAffiliate(ctx, sellerID)
	if err != nil {
		return chain, err
	}
	if seller == nil {
		return chain, constant.NewError(constant.CodeAffiliateNotFound).
			WithData(map[string]string{"affiliateId": sellerID})
	}

	levels := make([]*mainmodel.Affiliate, 1, maxChainDepth)
	levels[0] = seller
	for len(levels) < maxChainDepth {
		current := levels[len(levels)-1]
		if current.ReferredBy == nil || *current.ReferredBy == "" {
			break
		}
		parent, err := r.affiliates.GetAffiliate(ctx, *current.ReferredBy)
		if err != nil {
			return chain, err
		}
		if parent == nil {
			break
		}
		levels = append(levels, parent)
	}

	chain.N1 = levels[0]
	if len(levels) > 1 {
		chain.N2 = levels[1]
	}
	if len(levels) > 2 {
		chain.N3 = levels[2]
	}
	return chain, nil
}
