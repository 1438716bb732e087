package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/coursedesk-api/internal/models"
	"github.com/noah-isme/coursedesk-api/internal/service"
	appErrors "github.com/noah-isme/coursedesk-api/pkg/errors"
	"github.com/noah-isme/coursedesk-api/pkg/response"
)

// DatasetHandler exposes whole-dataset endpoints: import, export, explicit
// save, categories and settings.
type DatasetHandler struct {
	dataset *service.DatasetService
}

// NewDatasetHandler constructs DatasetHandler.
func NewDatasetHandler(dataset *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{dataset: dataset}
}

// Import godoc
// @Summary Replace the dataset with an uploaded document
// @Tags Dataset
// @Accept json
// @Produce json
// @Success 204
// @Router /dataset/import [post]
func (h *DatasetHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable payload"))
		return
	}
	if err := h.dataset.Import(c.Request.Context(), raw); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Download the dataset with export metadata
// @Tags Dataset
// @Produce json
// @Success 200 {object} models.ExportDocument
// @Router /dataset/export [get]
func (h *DatasetHandler) Export(c *gin.Context) {
	doc := h.dataset.Export(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="coursedesk-export.json"`)
	c.JSON(http.StatusOK, doc)
}

// Save godoc
// @Summary Force an immediate persistence pass
// @Tags Dataset
// @Produce json
// @Success 204
// @Router /dataset/save [post]
func (h *DatasetHandler) Save(c *gin.Context) {
	if err := h.dataset.SaveNow(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Status godoc
// @Summary Report persistence availability
// @Tags Dataset
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dataset/status [get]
func (h *DatasetHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"storageAvailable": h.dataset.StorageAvailable()}, nil)
}

// Categories godoc
// @Summary List course categories
// @Tags Dataset
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *DatasetHandler) Categories(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.dataset.Categories(), nil)
}

// Settings godoc
// @Summary Get AI settings
// @Tags Dataset
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *DatasetHandler) Settings(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.dataset.Settings(), nil)
}

// UpdateSettings godoc
// @Summary Replace AI settings
// @Tags Dataset
// @Accept json
// @Produce json
// @Param payload body models.Settings true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /settings [put]
func (h *DatasetHandler) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	response.JSON(c, http.StatusOK, h.dataset.UpdateSettings(settings), nil)
}
