package http

import (
	"net/http"

	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictionHandler handles HTTP requests for predictions and consensus
// scores.
type PredictionHandler struct {
	predictionRepo repository.PredictionRepository
	consensusRepo  repository.ConsensusScoreRepository
	logger         *logger.Logger
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(predictionRepo repository.PredictionRepository, consensusRepo repository.ConsensusScoreRepository, logger *logger.Logger) *PredictionHandler {
	return &PredictionHandler{predictionRepo: predictionRepo, consensusRepo: consensusRepo, logger: logger}
}

// RegisterRoutes registers the prediction routes to the Echo group.
func (h *PredictionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/predictions", h.GetPredictions)
	g.GET("/consensus", h.GetConsensus)
}

func (h *PredictionHandler) GetPredictions(c echo.Context) error {
	season, week, err := seasonWeekParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	predictions, err := h.predictionRepo.FindByWeek(c.Request().Context(), season, week)
	if err != nil {
		h.logger.Error("Failed to get predictions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get predictions"})
	}
	return c.JSON(http.StatusOK, predictions)
}

func (h *PredictionHandler) GetConsensus(c echo.Context) error {
	season, week, err := seasonWeekParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	scores, err := h.consensusRepo.FindByWeek(c.Request().Context(), season, week)
	if err != nil {
		h.logger.Error("Failed to get consensus scores", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get consensus scores"})
	}
	return c.JSON(http.StatusOK, scores)
}
