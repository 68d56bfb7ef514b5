package post

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/service"
	"github.com/VlKazmin/api-final-yatube/internal/storage"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *service.PostService
	storage     storage.Uploader
}

func NewPostHandler(postService *service.PostService, storage storage.Uploader) *PostHandler {
	return &PostHandler{
		postService: postService,
		storage:     storage,
	}
}

type postPayload struct {
	Text    string `json:"text" form:"text" binding:"required"`
	GroupID *int   `json:"group" form:"group"`
}

// CreatePost 创建帖子。作者强制为当前调用方，payload 中的作者字段被忽略。
// 支持 JSON 和带图片的 multipart 两种格式。
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var payload postPayload
	if err := c.ShouldBind(&payload); err != nil {
		util.Logger.Warn("无效的帖子数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "text is required", err))
		return
	}

	imageURL, _, err := h.uploadImage(c, userID.(int))
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "图片上传失败", err))
		return
	}

	post, err := h.postService.CreatePost(userID.(int), payload.Text, payload.GroupID, imageURL)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// uploadImage 处理 multipart 请求中的可选图片，返回存储后的访问URL
func (h *PostHandler) uploadImage(c *gin.Context, userID int) (string, bool, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return "", false, nil
	}
	file, err := c.FormFile("image")
	if err != nil {
		return "", false, nil
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("posts/%d/%s", userID, filename)
	url, err := h.storage.UploadFile(file, path)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListPosts 返回帖子列表。带 limit 参数时按 limit/offset 分页，
// 返回 {count, next, previous, results}，否则返回完整数组。
func (h *PostHandler) ListPosts(c *gin.Context) {
	p := util.ParsePagination(c)

	posts, total, err := h.postService.ListPosts(p.Limit, p.Offset)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if !p.Enabled() {
		c.JSON(http.StatusOK, posts)
		return
	}
	c.JSON(http.StatusOK, p.Envelope(c, total, posts))
}

type postUpdatePayload struct {
	Text    *string `json:"text" form:"text"`
	GroupID *int    `json:"group" form:"group"`
	Image   *string `json:"image" form:"image"`
}

// UpdatePost 更新帖子，只允许作者本人。作者和发布时间不可修改，
// text、group、image 都可编辑，image 传空字符串表示清除。
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	var payload postUpdatePayload
	if err := c.ShouldBind(&payload); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的帖子数据", err))
		return
	}

	userID, _ := c.Get("user_id")

	// multipart 请求里带新图片时上传并替换
	imageURL, uploaded, err := h.uploadImage(c, userID.(int))
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "图片上传失败", err))
		return
	}
	if uploaded {
		payload.Image = &imageURL
	}

	post, err := h.postService.UpdatePost(userID.(int), id, service.PostUpdate{
		Text:    payload.Text,
		GroupID: payload.GroupID,
		Image:   payload.Image,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost 删除帖子，只允许作者本人
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的帖子ID"))
		return
	}

	userID, _ := c.Get("user_id")
	if err := h.postService.DeletePost(userID.(int), id); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
