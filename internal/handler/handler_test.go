package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"aff-commission-api/internal/callback"
	"aff-commission-api/internal/constant"
	"aff-commission-api/internal/dao"
	"aff-commission-api/internal/dto"
	"aff-commission-api/internal/middleware"
	"aff-commission-api/internal/settlement"
	"aff-commission-api/internal/testutil"
)

const testToken = "hook-secret"

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	orders := dao.NewOrderDao(db)
	commissions := dao.NewCommissionDao(db)
	settler := settlement.NewSettlement(settlement.NewChainResolver(dao.NewAffiliateDao(db)), settlement.NewCalculator(), commissions, log)
	processor := callback.NewPaymentCallback(callback.PaymentCallbackDeps{
		Settler:     settler,
		Commissions: commissions,
		Orders:      orders,
		Alerts:      dao.NewAlertDao(db),
		Log:         log,
	}).WithRetryDelays([]time.Duration{0})

	r := gin.New()
	r.Use(middleware.TraceID())
	RegisterRoutes(r,
		NewWebhookHandler(orders, processor, log),
		NewCommissionHandler(orders, commissions, log),
		middleware.WebhookToken(testToken))
	return r, db
}

func postWebhook(t *testing.T, r *gin.Engine, body string, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.WebhookTokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestPaymentWebhook_ConfirmSettlesOrder(t *testing.T) {
	r, db := newTestServer(t)
	ids := testutil.SeedChain(t, db, 1)
	testutil.SeedOrder(t, db, "order-1", 10000, &ids[0])

	w, env := postWebhook(t, r, `{"event":"PAYMENT_CONFIRMED","payment":{"id":"pay_1","externalReference":"order-1","value":100.00}}`, testToken)
	if w.Code != http.StatusOK || env.Code != constant.CodeSuccess {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var res dto.ProcessResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !res.Success || !res.CommissionsCalculated || *res.TotalCommissionMinorUnits != 3000 || *res.AffiliateID != ids[0] {
		t.Errorf("result = %+v", res)
	}
}

func TestPaymentWebhook_RejectsBadToken(t *testing.T) {
	r, db := newTestServer(t)
	testutil.SeedOrder(t, db, "order-1", 10000, nil)

	w, _ := postWebhook(t, r, `{"event":"PAYMENT_CONFIRMED","payment":{"externalReference":"order-1"}}`, "wrong")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if has, _ := dao.NewCommissionDao(db).HasSplit(context.Background(), "order-1"); has {
		t.Error("unauthenticated webhook was processed")
	}
}

func TestPaymentWebhook_UnknownOrderAcknowledged(t *testing.T) {
	r, _ := newTestServer(t)

	w, env := postWebhook(t, r, `{"event":"PAYMENT_CONFIRMED","payment":{"externalReference":"missing"}}`, testToken)
	if w.Code != http.StatusOK || env.Code != constant.CodeOrderNotFound {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestPaymentWebhook_MalformedPayload(t *testing.T) {
	r, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"not json", `{"event":`, constant.CodeInvalidParams},
		{"missing event", `{"payment":{"externalReference":"order-1"}}`, constant.CodeInvalidParams},
		{"missing reference", `{"event":"PAYMENT_CONFIRMED","payment":{}}`, constant.CodeMissingParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := postWebhook(t, r, tt.body, testToken)
			if w.Code != http.StatusOK || env.Code != tt.code {
				t.Errorf("status = %d body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestPaymentWebhook_OrderWithoutSellerFails(t *testing.T) {
	r, db := newTestServer(t)
	testutil.SeedOrder(t, db, "order-1", 10000, nil)

	w, env := postWebhook(t, r, `{"event":"PAYMENT_CONFIRMED","payment":{"externalReference":"order-1"}}`, testToken)
	if w.Code != http.StatusOK || env.Code == constant.CodeSuccess {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestOrderCommissions(t *testing.T) {
	r, db := newTestServer(t)
	ids := testutil.SeedChain(t, db, 3)
	testutil.SeedOrder(t, db, "order-1", 10000, &ids[0])
	postWebhook(t, r, `{"event":"PAYMENT_CONFIRMED","payment":{"externalReference":"order-1"}}`, testToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/order-1/commissions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	var vo dto.OrderCommissionsVO
	if err := json.Unmarshal(env.Data, &vo); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vo.Split == nil || vo.Split.TotalValueCents != 3000 || vo.Split.N1AffiliateID != ids[0] || vo.Split.RedistributionApplied {
		t.Errorf("split = %+v", vo.Split)
	}
	if len(vo.Commissions) != 5 {
		t.Errorf("got %d commissions, want 5", len(vo.Commissions))
	}
}

func TestOrderCommissions_NotFound(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/missing/commissions", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{100, 10000},
		{0.1, 10},
		{19.99, 1999},
		{0.005, 1},
	}
	for _, tt := range tests {
		if got := toMinorUnits(tt.in); got != tt.want {
			t.Errorf("toMinorUnits(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
