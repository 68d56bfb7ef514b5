package user

import (
	"strings"

	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/service"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	userService service.UserServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Username string `json:"username" binding:"required,username"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user := &model.User{
		Username: registerData.Username,
		Email:    registerData.Email,
	}

	if err := h.userService.Register(user, registerData.Password); err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrUserExists {
			util.Logger.Warn("注册失败，用户已存在",
				zap.String("username", user.Username))
			errors.HandleError(c, err)
			return
		}
		util.Logger.Error("注册失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "注册失败", err))
		return
	}

	c.JSON(201, gin.H{
		"user": user,
	})
}

// Login 处理用户登录请求，成功时签发JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user, err := h.userService.Login(loginData.Email, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "生成令牌失败", err))
		return
	}

	c.JSON(200, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout 将当前令牌加入黑名单
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
		return
	}

	h.userService.Logout(token)
	errors.HandleSuccess(c, nil, "已退出登录")
}

// RefreshToken 用当前有效令牌换取新令牌
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
		return
	}

	newToken, err := util.RefreshToken(token)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "刷新令牌失败", err))
		return
	}

	c.JSON(200, gin.H{"token": newToken})
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
