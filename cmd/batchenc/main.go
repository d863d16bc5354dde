package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/batchenc/config"
	"github.com/bnema/batchenc/internal/adapter/converter/ffmpeg"
	HTTPAdapter "github.com/bnema/batchenc/internal/adapter/http"
	"github.com/bnema/batchenc/internal/adapter/process"
	sqlitestore "github.com/bnema/batchenc/internal/adapter/storage/sqlite"
	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/infrastructure/logger"
	"github.com/bnema/batchenc/internal/service"
)

const usage = `usage:
  batchenc serve
  batchenc run [flags] <input-dir>

Environment: PORT, DATA_DIR, AUTH_SECRET, FFMPEG_PATH, FFPROBE_PATH,
CONCURRENCY, HARDWARE, FORMAT, DEBUG, SECURE_COOKIES.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}
	logger.SetDebug(cfg.Debug)

	switch os.Args[1] {
	case "serve":
		err = serve(cfg)
	case "run":
		logger.SetOutput(os.Stderr)
		err = run(cfg, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if errors.Is(err, errIncomplete) {
		os.Exit(1)
	}
	if err != nil {
		logger.Error.Printf("%v", err)
		os.Exit(1)
	}
}

// errIncomplete marks a run where some file was not converted; the summary
// has already been printed.
var errIncomplete = errors.New("batch incomplete")

// app holds what both sub-commands share.
type app struct {
	eventBus *service.EventBus
	batchSvc *service.BatchService
	store    *sqlitestore.Store
}

func newApp(cfg *config.Config) (*app, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	store, err := sqlitestore.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	converter := ffmpeg.NewConverter(cfg.FFmpegPath, cfg.FFprobePath, process.NewInvoker())
	eventBus := service.NewEventBus()
	orch := service.NewBatchOrchestrator(converter, converter, eventBus)

	return &app{
		eventBus: eventBus,
		batchSvc: service.NewBatchService(orch, store),
		store:    store,
	}, nil
}

func serve(cfg *config.Config) error {
	if err := cfg.RequireAuthSecret(); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.store.Close() }()

	authSvc, err := service.NewAuthService(cfg.AuthSecret)
	if err != nil {
		return err
	}

	defaults := service.StartRequest{
		Format:      cfg.Format,
		Hardware:    cfg.Hardware,
		Concurrency: cfg.Concurrency,
	}
	server := HTTPAdapter.NewServer(authSvc, a.batchSvc, a.eventBus, defaults, cfg.SecureCookies)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// SSE streams never finish on their own; stop the batch first so
		// history is written, then drop connections.
		if err := a.batchSvc.Cancel(); err == nil {
			if err := a.batchSvc.Wait(shutdownCtx); err != nil {
				logger.Warn.Printf("batch did not stop in time: %v", err)
			}
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
			_ = httpServer.Close()
		}

		logger.Info.Printf("shutdown complete")
	}()

	logger.Info.Printf("batchenc listening on %s (ffmpeg=%s, concurrency=%d, hardware=%s)",
		addr, cfg.FFmpegPath, cfg.Concurrency, cfg.Hardware)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func run(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	filter := fs.String("filter", service.DefaultInputFilter, "glob matched against file names, case-insensitive")
	recursive := fs.Bool("recursive", false, "include subdirectories")
	outDir := fs.String("out", "", "output directory (default: next to each input)")
	sameDir := fs.Bool("same-dir", false, "write outputs next to their inputs")
	hw := fs.String("hw", string(cfg.Hardware), "encoder: cpu, nvidia or intel-qsv")
	format := fs.String("format", string(cfg.Format), "output container")
	concurrency := fs.Int("concurrency", cfg.Concurrency, "files converted at once")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("run needs exactly one input directory")
	}

	hardware, err := domain.ParseHardware(*hw)
	if err != nil {
		return err
	}
	container, err := domain.ParseFormat(*format)
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.store.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := a.eventBus.Subscribe(service.TopicAll)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		printStatus(os.Stdout, events, a.batchSvc)
	}()

	snap, summary, err := a.batchSvc.Run(ctx, service.StartRequest{
		InputDir:    fs.Arg(0),
		Filter:      *filter,
		Recursive:   *recursive,
		OutputDir:   *outDir,
		SameDir:     *sameDir,
		Format:      container,
		Hardware:    hardware,
		Concurrency: *concurrency,
	})
	a.eventBus.Unsubscribe(service.TopicAll, events)
	<-printed

	if err != nil && !errors.Is(err, domain.ErrCancelled) {
		return err
	}
	printSummary(os.Stdout, snap, summary)
	if errors.Is(err, domain.ErrCancelled) || snap.CountStatus(domain.JobStatusFailed) > 0 {
		return errIncomplete
	}
	return nil
}

// printStatus writes one line per visible change until events is closed.
func printStatus(w io.Writer, events <-chan service.Event, snaps HTTPAdapter.SnapshotSource) {
	last := ""
	for ev := range events {
		if ev.Type == "job" && domain.JobStatus(ev.Status).IsTerminal() {
			for _, j := range snaps.Snapshot().Completed {
				if j.ID == ev.JobID {
					printJob(w, j)
				}
			}
		}

		line := statusLine(snaps.Snapshot())
		if line != "" && line != last {
			_, _ = fmt.Fprintln(w, line)
			last = line
		}
	}
}

func statusLine(snap domain.BatchSnapshot) string {
	if !snap.Running || snap.Status == "" {
		return ""
	}
	line := fmt.Sprintf("[%5.1f%%] %s", snap.OverallProgress, snap.Status)
	if snap.AverageSpeed != "" {
		line += " | " + snap.AverageSpeed
	}
	if snap.ETA != "" {
		line += " | ETA " + snap.ETA
	}
	return line
}

func printJob(w io.Writer, j domain.JobSnapshot) {
	switch j.Status {
	case domain.JobStatusFailed:
		_, _ = fmt.Fprintf(w, "  FAIL %s: %s\n", j.Name, j.ErrorMessage)
	case domain.JobStatusCancelled:
		_, _ = fmt.Fprintf(w, "  STOP %s\n", j.Name)
	default:
		_, _ = fmt.Fprintf(w, "  OK   %s -> %s (%.1fs)\n", j.Name, j.OutputPath, j.ElapsedSeconds)
	}
}

func printSummary(w io.Writer, snap domain.BatchSnapshot, summary string) {
	_, _ = fmt.Fprintf(w, "\n%s\n", summary)
	_, _ = fmt.Fprintf(w, "  %d converted, %d failed, %d cancelled of %d\n",
		snap.CountStatus(domain.JobStatusCompleted),
		snap.CountStatus(domain.JobStatusFailed),
		snap.CountStatus(domain.JobStatusCancelled),
		snap.Total)
}
