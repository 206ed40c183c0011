package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dto"
	"aff-commission-api/internal/middleware"
	mainmodel "aff-commission-api/internal/model/main"
	"aff-commission-api/internal/utils"
)

// CommissionReader 订单分佣查询
type CommissionReader interface {
	GetSplit(ctx context.Context, orderID string) (*mainmodel.CommissionSplit, error)
	ListCommissions(ctx context.Context, orderID string) ([]mainmodel.Commission, error)
}

type CommissionHandler struct {
	orders      OrderReader
	commissions CommissionReader
	log         *logrus.Logger
}

func NewCommissionHandler(orders OrderReader, commissions CommissionReader, log *logrus.Logger) *CommissionHandler {
	return &CommissionHandler{orders: orders, commissions: commissions, log: log}
}

// OrderCommissions GET /api/v1/orders/:id/commissions
func (h *CommissionHandler) OrderCommissions(c *gin.Context) {
	ctx := c.Request.Context()
	traceID := c.GetString(middleware.TraceIDKey)
	orderID := c.Param("id")

	order, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		h.log.WithError(err).WithField("order_id", orderID).Error("[COMMISSION] load order failed")
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, utils.ErrorWithTrace(constant.CodeOrderNotFound, traceID))
		return
	}

	split, err := h.commissions.GetSplit(ctx, orderID)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	rows, err := h.commissions.ListCommissions(ctx, orderID)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}

	vo := dto.OrderCommissionsVO{Commissions: make([]dto.CommissionVO, 0, len(rows))}
	if split != nil {
		vo.Split = &dto.CommissionSplitVO{}
		if err := copier.Copy(vo.Split, split); err != nil {
			c.JSON(http.StatusOK, utils.Error(constant.CodeSystemError))
			return
		}
	}
	if err := copier.Copy(&vo.Commissions, &rows); err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeSystemError))
		return
	}
	c.JSON(http.StatusOK, utils.Success(vo))
}
