package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VlKazmin/api-final-yatube/config"
	"github.com/VlKazmin/api-final-yatube/internal/api/comment"
	"github.com/VlKazmin/api-final-yatube/internal/api/follow"
	"github.com/VlKazmin/api-final-yatube/internal/api/group"
	"github.com/VlKazmin/api-final-yatube/internal/api/post"
	"github.com/VlKazmin/api-final-yatube/internal/api/user"
	"github.com/VlKazmin/api-final-yatube/internal/common"
	"github.com/VlKazmin/api-final-yatube/internal/middleware"
	"github.com/VlKazmin/api-final-yatube/internal/repository/mysql"
	"github.com/VlKazmin/api-final-yatube/internal/service"
	"github.com/VlKazmin/api-final-yatube/internal/storage"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接，临时性错误重试
	if err := common.WithRetry(db.Ping, 3); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", util.ValidateUsername)
	}

	// 按配置选择图片存储后端
	uploader := newUploader()

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	emailService := service.NewEmailService()
	userService := service.NewUserService(userRepo, emailService)
	authHandler := user.NewAuthHandler(userService)

	postRepo := mysql.NewPostRepository(db)
	postService := service.NewPostService(postRepo)
	postHandler := post.NewPostHandler(postService, uploader)

	groupRepo := mysql.NewGroupRepository(db)
	groupService := service.NewGroupService(groupRepo)
	groupHandler := group.NewGroupHandler(groupService)

	commentRepo := mysql.NewCommentRepository(db)
	commentService := service.NewCommentService(commentRepo, postRepo)
	commentHandler := comment.NewCommentHandler(commentService)

	followRepo := mysql.NewFollowRepository(db)
	followService := service.NewFollowService(followRepo, userRepo)
	followHandler := follow.NewFollowHandler(followService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	// 本地存储时由应用自己提供静态文件服务
	if config.AppConfig.StorageBackend == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	auth := middleware.AuthMiddleware(userService)

	// 定义 API 路由
	api := r.Group("/api/v1")
	{
		// 认证相关路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", auth, authHandler.Logout)
		api.POST("/refresh-token", auth, authHandler.RefreshToken)

		// 帖子：读对所有人开放，写要求认证且只允许作者
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.POST("/posts", auth, postHandler.CreatePost)
		api.PUT("/posts/:id", auth, postHandler.UpdatePost)
		api.PATCH("/posts/:id", auth, postHandler.UpdatePost)
		api.DELETE("/posts/:id", auth, postHandler.DeletePost)

		// 分组：只读
		api.GET("/groups", groupHandler.ListGroups)
		api.GET("/groups/:id", groupHandler.GetGroup)

		// 评论：挂在帖子之下
		api.GET("/posts/:id/comments", commentHandler.ListComments)
		api.GET("/posts/:id/comments/:comment_id", commentHandler.GetComment)
		api.POST("/posts/:id/comments", auth, commentHandler.CreateComment)
		api.PUT("/posts/:id/comments/:comment_id", auth, commentHandler.UpdateComment)
		api.PATCH("/posts/:id/comments/:comment_id", auth, commentHandler.UpdateComment)
		api.DELETE("/posts/:id/comments/:comment_id", auth, commentHandler.DeleteComment)

		// 关注：所有操作都要求认证
		api.GET("/follow", auth, followHandler.ListFollows)
		api.POST("/follow", auth, followHandler.CreateFollow)
	}

	// 创建 http.Server 以支持优雅关闭
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// newUploader 根据配置选择图片存储后端
func newUploader() storage.Uploader {
	switch config.AppConfig.StorageBackend {
	case "s3":
		client, err := storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化S3客户端失败", zap.Error(err))
		}
		return client
	case "gcs":
		client, err := storage.NewGCSClient(config.AppConfig.GCSBucketName, config.AppConfig.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("初始化GCS客户端失败", zap.Error(err))
		}
		return client
	default:
		local, err := storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
		if err != nil {
			util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		return local
	}
}
