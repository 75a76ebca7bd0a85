package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/internal/ingestion/service"
	"github.com/0xquinto/parlay-picker/pkg/logger"
	"github.com/0xquinto/parlay-picker/pkg/utils"

	"github.com/labstack/echo/v4"
)

// RunHandler handles HTTP requests for ingestion runs.
type RunHandler struct {
	ingestionService service.IngestionService
	runRepo          repository.IngestionRunRepository
	logger           *logger.Logger
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(ingestionService service.IngestionService, runRepo repository.IngestionRunRepository, logger *logger.Logger) *RunHandler {
	return &RunHandler{ingestionService: ingestionService, runRepo: runRepo, logger: logger}
}

// RegisterRoutes registers the run routes to the Echo group.
func (h *RunHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/ingest", h.TriggerIngest)
	g.GET("/status", h.GetStatus)
	g.GET("/runs", h.GetRecentRuns)
}

// TriggerIngest kicks off a run for the given season/week, defaulting both
// to the current date. The run executes in the background; the response only
// acknowledges that it started. A second trigger while a run is in flight
// gets 409.
func (h *RunHandler) TriggerIngest(c echo.Context) error {
	season, week, err := seasonWeekParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if h.ingestionService.Tracker().Snapshot().Status == entity.RunStatusRunning {
		return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrRunInProgress.Error()})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if err := h.ingestionService.Run(ctx, season, week); err != nil {
			if errors.Is(err, service.ErrRunInProgress) {
				return
			}
			h.logger.Error("Ingestion run failed to start", logger.ErrorField(err))
		}
	}()

	return c.JSON(http.StatusAccepted, echo.Map{
		"status": "started",
		"season": season,
		"week":   week,
	})
}

// GetStatus returns the in-memory state of the current or last run.
func (h *RunHandler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ingestionService.Tracker().Snapshot())
}

// GetRecentRuns returns persisted run records, newest first.
func (h *RunHandler) GetRecentRuns(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = parsed
	}

	runs, err := h.runRepo.FindRecent(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get recent runs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get runs"})
	}
	return c.JSON(http.StatusOK, runs)
}

// seasonWeekParams reads optional season/week query params, falling back to
// the values derived from the current date.
func seasonWeekParams(c echo.Context) (int, int, error) {
	now := time.Now()
	season := utils.CurrentSeason(now)
	week := utils.CurrentWeek(now)

	if raw := c.QueryParam("season"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			return 0, 0, errors.New("invalid season")
		}
		season = parsed
	}
	if raw := c.QueryParam("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 18 {
			return 0, 0, errors.New("invalid week, must be 1-18")
		}
		week = parsed
	}
	return season, week, nil
}
