package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowlist/internal/api"
	"flowlist/internal/config"
	"flowlist/internal/importer"
	"flowlist/internal/notify"
	"flowlist/internal/repository"
	"flowlist/internal/service"
	"flowlist/internal/storage"
)

func main() {
	importPath := flag.String("import", "", "import tasks from a YAML file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	backend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer backend.Close()

	if *importPath != "" {
		runImport(backend, *importPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	delay := repository.Latency
	if !cfg.SimulateLatency {
		delay = repository.NoLatency
	}
	taskRepo := repository.NewTaskRepository(backend, delay)
	categoryRepo := repository.NewCategoryRepository(backend, delay)

	countSvc := service.NewCountService(taskRepo, categoryRepo)
	digestSvc := service.NewDigestService(taskRepo)

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.RefreshInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := countSvc.Refresh(jobCtx); err != nil {
			log.Printf("[warn] refresh counts: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule count refresh: %v", err)
	}

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("notifier: %v", err)
		}
		if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			summary, err := digestSvc.DailySummary(jobCtx, time.Now())
			if err != nil {
				log.Printf("[warn] build digest: %v", err)
				return
			}
			if err := notifier.Send(summary); err != nil {
				log.Printf("[warn] send digest: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule digest: %v", err)
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.New(taskRepo, categoryRepo, countSvc),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[warn] shutdown: %v", err)
		}
	}()

	log.Printf("[info] FlowList listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("[info] shutdown complete")
}

// runImport creates tasks from a YAML file without the simulated
// latency, then exits.
func runImport(backend storage.Backend, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read import file: %v", err)
	}

	taskRepo := repository.NewTaskRepository(backend, repository.NoLatency)
	categoryRepo := repository.NewCategoryRepository(backend, repository.NoLatency)

	count, err := importer.Import(context.Background(), taskRepo, categoryRepo, data)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Printf("[info] imported %d tasks", count)
}

func openBackend(cfg config.Config) (storage.Backend, error) {
	if cfg.Backend == config.BackendSQLite {
		return storage.NewDB(cfg.DatabaseURL)
	}
	return storage.NewFile(cfg.DataDir), nil
}
