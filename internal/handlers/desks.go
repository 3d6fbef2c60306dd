package handlers

import (
	"net/http"

	"teadesk-system/internal/domain"
	"teadesk-system/internal/service"

	"github.com/gin-gonic/gin"
)

type DeskHandler struct {
	service service.DeskServiceInterface
}

func NewDeskHandler(s service.DeskServiceInterface) *DeskHandler {
	return &DeskHandler{service: s}
}

func (dh *DeskHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dh.service.Get(companyScope(c)))
}

func (dh *DeskHandler) SaveDesk(c *gin.Context) {
	var info domain.DeskInfo
	if err := c.BindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	reg, err := dh.service.SaveDesk(companyScope(c), c.Param("id"), info)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

func (dh *DeskHandler) SaveAll(c *gin.Context) {
	var reg domain.DeskRegistry
	if err := c.BindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	saved, err := dh.service.SaveAll(companyScope(c), reg)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
