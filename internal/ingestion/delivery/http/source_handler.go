package http

import (
	"net/http"
	"strconv"

	"github.com/0xquinto/parlay-picker/internal/entity"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SourceHandler handles HTTP requests for expert sources.
type SourceHandler struct {
	sourceRepo repository.SourceRepository
	logger     *logger.Logger
}

// NewSourceHandler creates a new SourceHandler.
func NewSourceHandler(sourceRepo repository.SourceRepository, logger *logger.Logger) *SourceHandler {
	return &SourceHandler{sourceRepo: sourceRepo, logger: logger}
}

// RegisterRoutes registers the source routes to the Echo group.
func (h *SourceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllSources)
	g.POST("", h.CreateSource)
	g.PATCH("/:id/active", h.SetActive)
}

func (h *SourceHandler) GetAllSources(c echo.Context) error {
	sources, err := h.sourceRepo.GetAll(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get sources", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get sources"})
	}
	return c.JSON(http.StatusOK, sources)
}

func (h *SourceHandler) CreateSource(c echo.Context) error {
	var source entity.Source
	if err := c.Bind(&source); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if source.BlogName == "" || source.BaseURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "blog_name and base_url are required"})
	}

	if err := h.sourceRepo.Create(c.Request().Context(), &source); err != nil {
		h.logger.Error("Failed to create source", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create source"})
	}
	return c.JSON(http.StatusCreated, source)
}

func (h *SourceHandler) SetActive(c echo.Context) error {
	id := c.Param("id")

	active, err := strconv.ParseBool(c.QueryParam("value"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid value, must be true or false"})
	}

	if err := h.sourceRepo.SetActive(c.Request().Context(), id, active); err != nil {
		h.logger.Error("Failed to update source", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update source"})
	}
	return c.NoContent(http.StatusNoContent)
}
