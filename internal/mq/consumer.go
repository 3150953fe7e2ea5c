package mq

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"fpa-order-api/internal/dal"
	"fpa-order-api/internal/dto"
	"fpa-order-api/internal/notifyd"
)

// StartNotifyConsumer 消费首投通知任务。解析失败的消息直接丢弃，
// 投递失败的重试走派发器自己的 ZSET 队列，不依赖 MQ requeue。
func StartNotifyConsumer(ctx context.Context, d *notifyd.Dispatcher, log *logrus.Logger) {
	if dal.RabbitCh == nil {
		log.Warn("[MQ] rabbitmq channel not initialized, notify consumer disabled")
		return
	}
	msgs, err := dal.RabbitCh.Consume(QueueOrderNotify, "", false, false, false, false, nil)
	if err != nil {
		log.Errorf("[MQ] consume %s failed: %v", QueueOrderNotify, err)
		return
	}

	log.Infof("[MQ] notify consumer started on %s", QueueOrderNotify)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Warn("[MQ] notify consumer channel closed")
				return
			}
			go handleNotify(ctx, d, msg, log)
		}
	}
}

func handleNotify(ctx context.Context, d *notifyd.Dispatcher, msg amqp.Delivery, log *logrus.Logger) {
	var job dto.NotifyJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		log.Warnf("[MQ] notify job unmarshal failed: %v", err)
		_ = msg.Nack(false, false)
		return
	}
	d.Dispatch(ctx, job)
	_ = msg.Ack(false)
}
