package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"fpa-order-api/internal/cacheguard"
	"fpa-order-api/internal/config"
	"fpa-order-api/internal/dal"
	"fpa-order-api/internal/dao"
	"fpa-order-api/internal/handler"
	"fpa-order-api/internal/idgen"
	"fpa-order-api/internal/lock"
	"fpa-order-api/internal/logger"
	"fpa-order-api/internal/middleware"
	"fpa-order-api/internal/mq"
	"fpa-order-api/internal/notify"
	"fpa-order-api/internal/notifyd"
	"fpa-order-api/internal/reaper"
	"fpa-order-api/internal/service"
	"fpa-order-api/internal/trace"
	"fpa-order-api/internal/upstream"
)

func main() {
	// load config env
	config.Init()
	logger.Init()

	// init infra
	dal.InitMainDB()
	dal.InitOrderDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)

	// daos
	mainDao := dao.NewMainDao(dal.MainDB)
	orderDao := dao.NewOrderDao(dal.OrderDB)
	notifyLogDao := dao.NewNotifyLogDao(dal.OrderDB)
	traceDao := dao.NewTraceDao(dal.OrderDB)

	// shared components
	tracer := trace.New(traceDao, logger.Order)
	guard := cacheguard.New(dal.RedisClient, logger.Order)
	locker := lock.New(dal.RedisClient, logger.Order)
	alerter := notify.NewAlerter(dal.RedisClient)

	// supplier adapters
	upClient := upstream.NewClient(logger.Order)
	registry := upstream.NewRegistry()
	registry.Register(upstream.NewDemoPay(upClient))
	registry.Register(upstream.NewFastPay(upClient))

	orderSvc := service.NewOrderService(mainDao, orderDao, guard, registry, alerter, tracer, logger.Order)
	callbackSvc := service.NewCallbackService(mainDao, orderDao, registry, locker, tracer, logger.Callback)

	// merchant notify dispatcher
	nc := config.C.Notify
	breaker := notifyd.NewBreaker(dal.RedisClient, nc.BreakerThreshold, time.Hour,
		time.Duration(nc.BreakerCooldownSec)*time.Second, logger.Notify)
	queue := notifyd.NewQueue(dal.RedisClient, logger.Notify)
	rt := notifyd.NewRTTracker(dal.RedisClient, alerter, nc.SlowAvgMs, logger.Notify)
	dispatcher := notifyd.NewDispatcher(orderDao, notifyLogDao, mainDao, locker,
		breaker, queue, rt, nil, alerter, tracer, logger.Notify)

	// background loops
	ctx := context.Background()
	go mq.StartNotifyConsumer(ctx, dispatcher, logger.Notify)
	go dispatcher.Run(ctx)
	go reaper.New(orderDao,
		time.Duration(config.C.Order.ReaperIntervalS)*time.Second,
		time.Duration(config.C.Order.ValidityMinutes)*time.Minute,
		logger.Reaper,
	).Run(ctx)

	// http server
	if config.C.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover(), middleware.RequestLogger(), middleware.RequestAudit())

	v1 := r.Group("/api/v1")
	{
		oh := handler.NewOrderHandler(orderSvc)
		cbh := handler.NewCallbackHandler(callbackSvc)

		v1.POST("/pay/order", middleware.OrderCreateAuth(mainDao), oh.Create)
		v1.GET("/pay/order/:orderNo", middleware.OrderQueryAuth(mainDao), oh.Query)
		v1.POST("/pay/notify/:supplier", cbh.Handle)
		v1.GET("/pay/notify/:supplier", cbh.Handle)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
