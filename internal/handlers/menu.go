package handlers

import (
	"net/http"

	"teadesk-system/internal/domain"
	"teadesk-system/internal/service"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	service service.MenuServiceInterface
}

func NewMenuHandler(s service.MenuServiceInterface) *MenuHandler {
	return &MenuHandler{service: s}
}

func (mh *MenuHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, mh.service.Get(companyScope(c)))
}

func (mh *MenuHandler) Save(c *gin.Context) {
	var m domain.Menu
	if err := c.BindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	saved, err := mh.service.Save(companyScope(c), m)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
