package comment

import (
	"net/http"
	"strconv"

	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/service"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentHandler 的所有路由都挂在 /posts/:id/comments 之下，
// 帖子ID从路径解析，帖子不存在时服务层直接返回404。
type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentPayload struct {
	Text string `json:"text" binding:"required"`
}

func (h *CommentHandler) postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return 0, false
	}
	return id, true
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}
	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的评论ID"))
		return
	}

	comment, err := h.commentService.GetComment(postID, commentID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// CreateComment 创建评论。作者强制为当前调用方，
// 所属帖子强制取自URL，payload 中的 post 字段被忽略。
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var payload commentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		util.Logger.Warn("无效的评论数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "text is required", err))
		return
	}

	userID, _ := c.Get("user_id")
	comment, err := h.commentService.CreateComment(userID.(int), postID, payload.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// UpdateComment 更新评论，只允许评论作者本人
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}
	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的评论ID"))
		return
	}

	var payload commentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "text is required", err))
		return
	}

	userID, _ := c.Get("user_id")
	comment, err := h.commentService.UpdateComment(userID.(int), postID, commentID, payload.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment 删除评论，只允许评论作者本人
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}
	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的评论ID"))
		return
	}

	userID, _ := c.Get("user_id")
	if err := h.commentService.DeleteComment(userID.(int), postID, commentID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
