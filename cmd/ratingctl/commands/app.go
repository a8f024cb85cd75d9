package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/config"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/database"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/repository"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/scoring"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/service"
)

// AppContext holds the dependencies shared by all commands
type AppContext struct {
	Ctx    context.Context
	Cfg    *config.Config
	Logger *zap.Logger

	db *database.Database
}

// Database opens the connection pool on first use
func (a *AppContext) Database() (*database.Database, error) {
	if a.db != nil {
		return a.db, nil
	}

	a.Logger.Info("Connecting to database",
		zap.String("host", a.Cfg.Database.Host),
		zap.String("name", a.Cfg.Database.Name),
	)
	db, err := database.New(a.Ctx, &a.Cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db
	return db, nil
}

// ScoringService wires a scoring service against the database
func (a *AppContext) ScoringService() (*service.ScoringService, error) {
	db, err := a.Database()
	if err != nil {
		return nil, err
	}
	mode, err := scoring.ParseRoundingMode(a.Cfg.Scoring.RoundingMode)
	if err != nil {
		return nil, err
	}
	return service.NewScoringService(
		repository.NewRatingRepository(db.DB),
		repository.NewVacancyRepository(db.DB),
		repository.NewCompetencyRepository(db.DB),
		repository.NewCandidateRepository(db.DB),
		mode,
		a.Cfg.Scoring.CacheTTL,
	), nil
}

// AuditService wires a rating audit service against the database
func (a *AppContext) AuditService() (*service.RatingAuditService, error) {
	db, err := a.Database()
	if err != nil {
		return nil, err
	}
	return service.NewRatingAuditService(repository.NewRatingLogRepository(db.DB)), nil
}

// Close releases the database and flushes the logger
func (a *AppContext) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil && a.Logger != nil {
			a.Logger.Warn("Failed to close database", zap.Error(err))
		}
		a.db = nil
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
