package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/brightertomorrows/website-backend/internal/config"
	"github.com/brightertomorrows/website-backend/internal/domain/cart"
	"github.com/brightertomorrows/website-backend/internal/domain/catalog"
	"github.com/brightertomorrows/website-backend/internal/domain/post"
	"github.com/brightertomorrows/website-backend/internal/domain/schedule"
	"github.com/brightertomorrows/website-backend/internal/domain/session"
	"github.com/brightertomorrows/website-backend/internal/httpapi"
	"github.com/brightertomorrows/website-backend/internal/markdown"
	"github.com/brightertomorrows/website-backend/internal/postfile"
	"github.com/brightertomorrows/website-backend/internal/sqlite"
	"github.com/brightertomorrows/website-backend/internal/upstream"
	"github.com/brightertomorrows/website-backend/migrations"
)

func main() {
	// .env is optional; deployment sets real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logWriter := io.Writer(os.Stdout)
	if logPath := os.Getenv("SITE_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := runEmbeddedMigrations(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load program catalog", "error", err)
		os.Exit(1)
	}

	postRepo, err := postfile.NewRepository(cfg.Posts.Dir, logger)
	if err != nil {
		logger.Error("failed to open posts directory", "error", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(cfg.Cart.Path, logger)
	if err != nil {
		logger.Error("failed to open cart store", "error", err)
		os.Exit(1)
	}

	postSvc := post.NewService(postRepo, markdown.New(), logger)
	sessionSvc := session.NewService(session.NewMemoryStore(), cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.SessionTTL, logger)
	scheduleSvc := schedule.NewService(cat, logger)

	server := httpapi.NewServer(httpapi.Deps{
		Logger:   logger,
		Posts:    postSvc,
		Sessions: sessionSvc,
		Schedule: scheduleSvc,
		Catalog:  cat,
		Cart:     cartStore,
		PayPal:   upstream.NewPayPalClient(cfg.PayPal, logger),
		Shopify:  upstream.NewShopifyClient(cfg.Shopify, logger),
		Airtable: upstream.NewAirtableClient(cfg.Airtable, logger),
		Mailer:   upstream.NewEmailJSClient(cfg.EmailJS, logger),
		Orders:   sqlite.NewOrderRepository(db),
		Contacts: sqlite.NewContactRepository(db),
		PublicKeys: httpapi.PublicKeys{
			PayPalClientID:    cfg.PayPal.WidgetClientID,
			EmailJSServiceID:  cfg.EmailJS.ServiceID,
			EmailJSTemplateID: cfg.EmailJS.TemplateID,
			EmailJSPublicKey:  cfg.EmailJS.PublicKey,
			ShopifyDomain:     cfg.Shopify.StoreDomain,
		},
		PublicDir: cfg.Server.PublicDir,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func runEmbeddedMigrations(db *sqlite.DB) error {
	data, err := migrations.FS.ReadFile("001_initial_schema.up.sql")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	if _, err := db.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
