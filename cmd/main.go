package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"aff-commission-api/internal/callback"
	"aff-commission-api/internal/config"
	"aff-commission-api/internal/dal"
	"aff-commission-api/internal/dao"
	"aff-commission-api/internal/handler"
	"aff-commission-api/internal/idgen"
	"aff-commission-api/internal/logger"
	"aff-commission-api/internal/middleware"
	"aff-commission-api/internal/mq"
	"aff-commission-api/internal/settlement"
	"aff-commission-api/internal/shard"
	"aff-commission-api/internal/wallet"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	if err := dal.AutoMigrate(dal.MainDB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
	dal.InitRedis()
	if err := dal.InitRabbitMQ(); err != nil {
		log.Fatalf("rabbitmq init failed: %v", err)
	}

	// idgen
	idgen.Init(config.C.Snowflake.NodeID)
	shard.InitShardEngines()

	appLog := logger.NewLogger("app")
	commissionLog := logger.NewLogger("commission")

	// dao
	orders := dao.NewOrderDao(dal.MainDB)
	commissions := dao.NewCommissionDao(dal.MainDB)

	// commission engine
	settler := settlement.NewSettlement(
		settlement.NewChainResolver(dao.NewAffiliateDao(dal.MainDB)),
		settlement.NewCalculator(),
		commissions,
		commissionLog,
	)
	deps := callback.PaymentCallbackDeps{
		Settler:      settler,
		Commissions:  commissions,
		Orders:       orders,
		Alerts:       dao.NewAlertDao(dal.MainDB),
		Publisher:    mq.NewPublisher(appLog),
		Audit:        logger.NewPaymentEventLogger(dal.MainDB, shard.PaymentEventLogShard, commissionLog),
		HouseWallets: []string{config.C.Commission.HouseAWalletID, config.C.Commission.HouseBWalletID},
		AlertChatID:  config.C.Notify.ChatID,
		Log:          commissionLog,
	}
	if wc := config.C.Wallet; wc.ApiUrl != "" {
		client := wallet.NewClient(wc.ApiUrl, wc.ApiKey, time.Duration(wc.TimeoutSec)*time.Second)
		deps.Wallets = wallet.NewValidator(client, dal.RedisClient, time.Duration(wc.CacheTtlSec)*time.Second, appLog)
	}
	processor := callback.NewPaymentCallback(deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start consumers
	go mq.StartPaymentEventConsumer(ctx, processor, commissionLog)

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// 设置可信代理 IP（如本地或内网）
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "192.168.0.0/16"})
	r.Use(middleware.TraceID(), middleware.Recover(appLog), middleware.RequestLogger(appLog, logger.NewLogger("error")))

	handler.RegisterRoutes(r,
		handler.NewWebhookHandler(orders, processor, commissionLog),
		handler.NewCommissionHandler(orders, commissions, appLog),
		middleware.WebhookToken(config.C.Security.WebhookToken),
	)

	srv := &http.Server{Addr: ":" + config.C.Server.Port, Handler: r}
	go func() {
		appLog.Infof("listening %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("http server shutdown failed")
	}
	appLog.Info("server exited")
}
