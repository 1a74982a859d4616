package app

import (
	"context"
	"errors"

	"github.com/nivran-shop/storefront-api/internal/cache"
	"github.com/nivran-shop/storefront-api/internal/config"
	"github.com/nivran-shop/storefront-api/internal/provider"
	"github.com/nivran-shop/storefront-api/internal/queue"
	"github.com/nivran-shop/storefront-api/internal/router"
	"github.com/nivran-shop/storefront-api/internal/worker"
)

// workerService 将任务消费端适配为 Service
type workerService struct {
	w *worker.Worker
}

func (s *workerService) Name() string {
	return "worker"
}

func (s *workerService) Start(ctx context.Context) error {
	if err := s.w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (s *workerService) Stop(ctx context.Context) error {
	s.w.Shutdown()
	return nil
}

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		if w := worker.New(cfg, container.OrderService); w != nil {
			services = append(services, &workerService{w: w})
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	defer func() {
		if err := queue.Close(); err != nil {
			opts.Logger.Warnw("queue_close_failed", "error", err)
		}
		if err := cache.Close(); err != nil {
			opts.Logger.Warnw("cache_close_failed", "error", err)
		}
	}()

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
