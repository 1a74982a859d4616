package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/nivran-shop/storefront-api/internal/config"
	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/logger"
	"github.com/nivran-shop/storefront-api/internal/queue"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// Worker 异步任务消费端，目前只消费订单超时取消任务
type Worker struct {
	server       *asynq.Server
	mux          *asynq.ServeMux
	orderService *service.OrderService
}

// New 创建任务消费端；队列未启用时返回 nil
func New(cfg *config.Config, orderService *service.OrderService) *Worker {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil
	}

	concurrency := cfg.Queue.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	queues := cfg.Queue.Queues
	if len(queues) == 0 {
		queues = map[string]int{constants.QueueDefault: 10}
	}

	host := strings.TrimSpace(cfg.Queue.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Queue.Port
	if port <= 0 {
		port = 6379
	}

	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     fmt.Sprintf("%s:%d", host, port),
			Password: cfg.Queue.Password,
			DB:       cfg.Queue.DB,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      queues,
			Logger:      asynqLogger{},
		},
	)

	w := &Worker{server: server, mux: asynq.NewServeMux(), orderService: orderService}
	w.mux.HandleFunc(constants.TaskOrderTimeoutCancel, w.handleOrderTimeoutCancel)
	return w
}

// Start 启动消费（非阻塞）
func (w *Worker) Start() error {
	if w == nil || w.server == nil {
		return nil
	}
	logger.Infow("任务消费端启动")
	return w.server.Start(w.mux)
}

// Shutdown 停止消费
func (w *Worker) Shutdown() {
	if w == nil || w.server == nil {
		return
	}
	w.server.Shutdown()
	logger.Infow("任务消费端已停止")
}

// handleOrderTimeoutCancel 处理订单超时取消任务
func (w *Worker) handleOrderTimeoutCancel(ctx context.Context, task *asynq.Task) error {
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Errorw("订单超时取消任务载荷解析失败", "error", err)
		// 载荷损坏重试无意义
		return nil
	}
	if err := w.orderService.CancelExpired(payload.OrderID); err != nil {
		logger.Errorw("订单超时取消失败", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

// asynqLogger 将 asynq 内部日志接入 zap
type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) { logger.S().Debug(args...) }
func (asynqLogger) Info(args ...interface{})  { logger.S().Info(args...) }
func (asynqLogger) Warn(args ...interface{})  { logger.S().Warn(args...) }
func (asynqLogger) Error(args ...interface{}) { logger.S().Error(args...) }
func (asynqLogger) Fatal(args ...interface{}) { logger.S().Fatal(args...) }
