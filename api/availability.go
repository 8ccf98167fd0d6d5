package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/courtify/courtify/internal/domain"
	"github.com/courtify/courtify/internal/service/availability"
	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	service availability.UseCase
}

type serviceResponse struct {
	ID          domain.ID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Price       float64   `json:"price,omitempty"`
}

func NewAvailabilityHandler(service availability.UseCase) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

func (h *AvailabilityHandler) Register(router *gin.RouterGroup) {
	router.GET("/services", h.services)
	router.POST("/court/availability/check", h.check)
}

func (h *AvailabilityHandler) services(c *gin.Context) {
	services, err := h.service.Services(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	out := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceResponse{
			ID:          svc.ID,
			Name:        svc.Name,
			Description: svc.Description,
			Duration:    svc.Duration,
			Price:       svc.Price,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": out})
}

func (h *AvailabilityHandler) check(c *gin.Context) {
	var input availability.CheckInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	results, err := h.service.Check(c.Request.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if domain.IsValidation(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"dateFrom":      input.DateFrom,
		"dateTo":        input.DateTo,
		"preferredTime": input.PreferredTime,
		"results":       results,
	})
}
