package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	digestinadapter "readrise/internal/modules/digest/adapter/in"
	digestoutadapter "readrise/internal/modules/digest/adapter/out"
	digestservice "readrise/internal/modules/digest/service"
	digestusecase "readrise/internal/modules/digest/usecase"
	libraryinadapter "readrise/internal/modules/library/adapter/in"
	libraryoutadapter "readrise/internal/modules/library/adapter/out"
	libraryservice "readrise/internal/modules/library/service"
	libraryusecase "readrise/internal/modules/library/usecase"
	sessioninadapter "readrise/internal/modules/session/adapter/in"
	sessionoutadapter "readrise/internal/modules/session/adapter/out"
	sessiondto "readrise/internal/modules/session/dto"
	sessionservice "readrise/internal/modules/session/service"
	sessionusecase "readrise/internal/modules/session/usecase"
	statsinadapter "readrise/internal/modules/stats/adapter/in"
	statsoutadapter "readrise/internal/modules/stats/adapter/out"
	statsservice "readrise/internal/modules/stats/service"
	statsusecase "readrise/internal/modules/stats/usecase"
	"readrise/internal/platform/clock"
	"readrise/internal/platform/config"
	"readrise/internal/platform/database"
	"readrise/internal/platform/id"
	"readrise/internal/platform/logging"
	"readrise/internal/platform/metrics"
	uiapp "readrise/internal/ui/app"
)

type App struct {
	Config    config.Config
	Logger    *zap.Logger
	DB        *database.DB
	Scheduler *digestinadapter.Scheduler

	LibraryCLI libraryinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
	DigestCLI  digestinadapter.CLIHandler
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	app, err := wire(cfg, logger, db, clock.SystemClock{}, id.UUID{})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func wire(cfg config.Config, logger *zap.Logger, db *database.DB, clk clock.Clock, ids id.Generator) (*App, error) {
	libraryUC := libraryusecase.NewInteractor(libraryservice.NewLibraryService(clk, ids, db, libraryservice.Stores{
		Users:    libraryoutadapter.NewSQLUserStore(db),
		Books:    libraryoutadapter.NewSQLBookStore(db),
		Entries:  libraryoutadapter.NewSQLEntryStore(db),
		Progress: libraryoutadapter.NewSQLProgressStore(db),
		Goals:    libraryoutadapter.NewSQLGoalStore(db),
		Reviews:  libraryoutadapter.NewSQLReviewStore(db),
	}), logger.Named("library"))

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, db, sessionoutadapter.NewSQLSessionStore(db)),
		libraryUC,
		logger.Named("session"),
	)

	statsUC := statsusecase.NewInteractor(
		statsservice.NewAssembler(clk, statsoutadapter.NewSQLQueries(db), logger.Named("stats")),
		libraryUC,
		logger.Named("stats"),
	)

	notifier, err := digestoutadapter.NewNotifier(cfg.Digest.Notifier, logger.Named("digest"))
	if err != nil {
		return nil, err
	}
	digestUC := digestusecase.NewInteractor(
		digestservice.NewDigestService(clk, digestoutadapter.NewSQLSummarySource(db), notifier),
		libraryUC,
		statsUC,
		logger.Named("digest"),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Scheduler:  digestinadapter.NewScheduler(digestUC, logger.Named("scheduler")),
		LibraryCLI: libraryinadapter.NewCLIHandler(libraryUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		DigestCLI:  digestinadapter.NewCLIHandler(digestUC),
	}, nil
}

func (a *App) Close() error {
	_ = a.Logger.Sync()
	return a.DB.Close()
}

// RunDaemon schedules the weekly digest and serves metrics until ctx is cancelled.
func (a *App) RunDaemon(ctx context.Context) error {
	if err := a.Scheduler.Schedule(a.Config.Digest.Schedule); err != nil {
		return err
	}
	a.Scheduler.Start()
	defer a.Scheduler.Stop()
	a.Logger.Info("daemon started",
		zap.String("digest_schedule", a.Config.Digest.Schedule),
		zap.String("notifier", a.Config.Digest.Notifier),
	)

	if err := metrics.Serve(ctx, a.Config.Metrics.Addr, a.Logger.Named("metrics")); err != nil {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// RunTUI opens the interactive shelves, timer and dashboard.
// A non-nil session opens the timer on that session.
func RunTUI(app *App, session *sessiondto.SessionOutput, title string) error {
	model := uiapp.NewModel(app.Config.UserID, app.LibraryCLI, app.SessionCLI, app.StatsCLI)
	if session != nil {
		model = model.WithSession(*session, title)
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
