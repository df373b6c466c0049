package app

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/handlers"
	"github.com/ternarybob/marketmood/internal/services/analysis"
	"github.com/ternarybob/marketmood/internal/services/news"
	"github.com/ternarybob/marketmood/internal/services/watchlist"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	NewsService      *news.Service
	AnalysisService  *analysis.Service
	WatchlistService *watchlist.Service

	// Handlers
	AnalyzeHandler   *handlers.AnalyzeHandler
	WatchlistHandler *handlers.WatchlistHandler
	APIHandler       *handlers.APIHandler
	PageHandler      *handlers.PageHandler
}

// New creates the application, wiring services and handlers
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.initServices(ctx)
	app.initHandlers()

	logger.Info().
		Str("environment", cfg.Environment).
		Str("response_schema", string(cfg.Pipeline.ResponseSchema)).
		Bool("tavily_configured", cfg.Tavily.APIKey != "").
		Bool("watchlist_configured", cfg.Supabase.URL != "").
		Msg("Application initialized")

	return app, nil
}

func (a *App) initServices(ctx context.Context) {
	a.NewsService = news.NewService(&a.Config.Tavily, a.Logger)
	a.AnalysisService = analysis.NewService(ctx, a.Config, a.Logger)
	a.WatchlistService = watchlist.NewService(&a.Config.Supabase, a.Logger)
}

func (a *App) initHandlers() {
	a.AnalyzeHandler = handlers.NewAnalyzeHandler(a.NewsService, a.AnalysisService, a.Config, a.Logger)
	a.WatchlistHandler = handlers.NewWatchlistHandler(a.WatchlistService, a.Logger)
	a.APIHandler = handlers.NewAPIHandler()
	a.PageHandler = handlers.NewPageHandler(a.Logger)
}

// Close releases application resources
func (a *App) Close() error {
	a.Logger.Info().Msg("Application closed")
	return nil
}
