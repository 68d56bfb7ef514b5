package follow

import (
	"net/http"

	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/service"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FollowHandler 的所有路由都要求认证，
// 列表永远只返回调用方自己的关注。
type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// ListFollows 返回当前用户的关注列表，?search= 按被关注者用户名过滤
func (h *FollowHandler) ListFollows(c *gin.Context) {
	userID, _ := c.Get("user_id")
	search := c.Query("search")

	follows, err := h.followService.ListFollows(userID.(int), search)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, follows)
}

type followPayload struct {
	Following string `json:"following" binding:"required"`
}

// CreateFollow 关注一个作者。user 强制为当前调用方，
// 自关注和重复关注都返回400。
func (h *FollowHandler) CreateFollow(c *gin.Context) {
	var payload followPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.Logger.Warn("无效的关注数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "following is required", err))
		return
	}

	userID, _ := c.Get("user_id")
	follow, err := h.followService.Follow(userID.(int), payload.Following)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, follow)
}
