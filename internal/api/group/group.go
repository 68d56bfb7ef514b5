package group

import (
	"net/http"
	"strconv"

	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler 只暴露读操作，没有任何写路由
type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups()
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的分组ID"))
		return
	}

	group, err := h.groupService.GetGroup(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}
