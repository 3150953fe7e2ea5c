package mq

import (
	"encoding/json"

	"github.com/streadway/amqp"

	"fpa-order-api/internal/dal"
	"fpa-order-api/internal/dto"
)

const (
	ExchangeOrderEvents = "order_events"
	QueueOrderNotify    = "order_notify"
	RouteOrderNotify    = "order.notify"
)

// PublishNotifyJob 订单支付成功后投递首次商户通知任务
func PublishNotifyJob(orderNo uint64) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(dto.NotifyJob{OrderNo: orderNo, Attempt: 1})
	return dal.RabbitCh.Publish(
		ExchangeOrderEvents,
		RouteOrderNotify,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
}
