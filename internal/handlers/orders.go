package handlers

import (
	"net/http"

	"teadesk-system/internal/domain"
	"teadesk-system/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service service.OrderServiceInterface
}

func NewOrderHandler(s service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: s}
}

func (oh *OrderHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, oh.service.List(companyScope(c)))
}

func (oh *OrderHandler) Get(c *gin.Context) {
	order, err := oh.service.Get(companyScope(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oh *OrderHandler) Create(c *gin.Context) {
	var payload domain.OrderPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	order, err := oh.service.Create(companyScope(c), payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (oh *OrderHandler) Update(c *gin.Context) {
	var upd domain.OrderUpdate
	if err := c.BindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	order, err := oh.service.Update(companyScope(c), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oh *OrderHandler) Rate(c *gin.Context) {
	var req domain.RatingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	order, err := oh.service.Rate(companyScope(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oh *OrderHandler) BulkReplace(c *gin.Context) {
	var payloads []domain.OrderPayload
	if err := c.BindJSON(&payloads); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	count, err := oh.service.BulkReplace(companyScope(c), payloads)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (oh *OrderHandler) Delete(c *gin.Context) {
	order, err := oh.service.Delete(companyScope(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oh *OrderHandler) Clear(c *gin.Context) {
	if err := oh.service.Clear(companyScope(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
