package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/auth"
	"github.com/diewo77/go-visitors/internal/handlers"
	"github.com/diewo77/go-visitors/internal/metrics"
	"github.com/diewo77/go-visitors/internal/notify"
	"github.com/diewo77/go-visitors/internal/policy"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/scheduler"
	"github.com/diewo77/go-visitors/templates"
	"github.com/diewo77/go-visitors/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the kiosk web application. The environment variables are listed in the README.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := newRuntime(ctx, migrateIfConfigured)
	if err != nil {
		return err
	}
	defer rt.close()
	spec, log := rt.spec, rt.log

	if err := seedSuperAdmin(ctx, rt); err != nil {
		return err
	}

	monitor := metrics.NewMonitor("go-visitors", log)
	loc := spec.Location()
	renderer := view.New(templates.FS,
		view.WithDev(spec.Dev),
		view.WithDefaults(handlers.PageDefaults),
	)
	cookies := auth.NewManager(spec.SessionSecret, !spec.Dev)
	deps := handlers.Deps{
		Registry:      rt.reg,
		View:          renderer,
		Log:           log,
		Notifier:      notify.New(spec, log),
		Metrics:       monitor,
		Location:      loc,
		NotifyTimeout: spec.NotifyTimeout,
		DemoFallback:  spec.DemoFallback,
	}
	routerCfg := policy.NewRouterConfig(deps, policy.Options{
		Cookies:  cookies,
		GateTTL:  spec.GateCacheTTL,
		AlarmObs: monitor,
	})
	app := NewApp(routerCfg, AppOptions{
		Cookies:     cookies,
		Store:       rt.reg,
		Monitor:     monitor,
		Log:         log,
		DefaultLang: spec.DefaultLanguage,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(log)
	if err := addBackgroundTasks(sched, rt.reg, monitor, spec.SweepInterval, spec.HeartbeatInterval); err != nil {
		return err
	}
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", spec.Port),
		Handler:      app,
		ReadTimeout:  spec.ReadTimeout,
		WriteTimeout: spec.WriteTimeout,
		IdleTimeout:  spec.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.Int("port", spec.Port),
			zap.Bool("dev", spec.Dev),
			zap.String("store", spec.StoreBackend),
			zap.Bool("email_configured", spec.EmailConfigured()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}

// addBackgroundTasks registers the retention sweep and the store heartbeat.
func addBackgroundTasks(s *scheduler.Scheduler, reg *registry.Registry, monitor *metrics.Monitor, sweepEvery, heartbeatEvery time.Duration) error {
	if err := s.Add(scheduler.Task{
		Name:     "retention-sweep",
		Interval: sweepEvery,
		Run: func(ctx context.Context) error {
			n, err := reg.SweepExpired(ctx, "")
			if err != nil {
				return err
			}
			monitor.Swept(n)
			return nil
		},
	}); err != nil {
		return fmt.Errorf("retention sweep task: %w", err)
	}
	if err := s.Add(scheduler.Task{
		Name:       "store-heartbeat",
		Interval:   heartbeatEvery,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			err := reg.Ping(ctx)
			monitor.SetDependencyAvailability("store", err == nil)
			return err
		},
	}); err != nil {
		return fmt.Errorf("heartbeat task: %w", err)
	}
	return nil
}
