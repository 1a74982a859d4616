package queue

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nivran-shop/storefront-api/internal/config"
	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/logger"
)

var client *asynq.Client
var enabled bool

// OrderTimeoutCancelPayload 订单超时取消任务载荷
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// Init 初始化任务队列客户端。未启用 Redis 时队列静默关闭，
// 超时取消退化为无（订单保持待支付，由后台手动处理）。
func Init(cfg *config.Config) {
	if cfg == nil || !cfg.Queue.Enabled {
		enabled = false
		return
	}
	client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr(&cfg.Queue),
		Password: cfg.Queue.Password,
		DB:       cfg.Queue.DB,
	})
	enabled = true
}

// Enabled 判断队列是否启用
func Enabled() bool {
	return enabled && client != nil
}

// Close 关闭队列客户端
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	enabled = false
	return err
}

// EnqueueOrderTimeoutCancel 投递延迟的订单超时取消任务
func EnqueueOrderTimeoutCancel(orderID uint, delay time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(OrderTimeoutCancelPayload{OrderID: orderID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(constants.TaskOrderTimeoutCancel, payload)
	info, err := client.Enqueue(task,
		asynq.Queue(constants.QueueDefault),
		asynq.ProcessIn(delay),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}
	logger.Debugw("订单超时取消任务已入队", "order_id", orderID, "task_id", info.ID, "delay", delay.String())
	return nil
}

func redisAddr(cfg *config.QueueConfig) string {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return fmt.Sprintf("%s:%d", host, port)
}
