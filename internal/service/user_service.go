package service

import (
	"sync"
	"time"

	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/repository/interfaces"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceInterface 供处理器和中间件依赖，便于在测试中替换
type UserServiceInterface interface {
	Register(user *model.User, password string) error
	Login(email, password string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	Logout(token string)
	IsTokenBlacklisted(token string) bool
}

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo       interfaces.UserRepository
	emailService   *EmailService
	tokenBlacklist map[string]time.Time
	blacklistMutex sync.RWMutex
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, emailService *EmailService) *UserService {
	return &UserService{
		userRepo:       userRepo,
		emailService:   emailService,
		tokenBlacklist: make(map[string]time.Time),
	}
}

var _ UserServiceInterface = (*UserService)(nil)

// Register 注册新用户
func (s *UserService) Register(user *model.User, password string) error {
	existing, err := s.userRepo.FindByUsername(user.Username)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查找用户失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "username already exists")
	}

	existing, err = s.userRepo.FindByEmail(user.Email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查找用户失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "密码哈希失败", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}

	// 欢迎邮件异步发送，失败不影响注册
	if s.emailService != nil {
		s.emailService.SendWelcomeEmail(user.Email, user.Username)
	}

	util.Logger.Info("用户注册成功",
		zap.Int("user_id", user.ID),
		zap.String("username", user.Username))
	return nil
}

// Login 校验邮箱和密码
func (s *UserService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查找用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid credentials")
	}
	return user, nil
}

// GetUserByID 通过ID获取用户
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查找用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

// GetUserByUsername 通过用户名获取用户
func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查找用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

// Logout 把令牌加入黑名单，有效期内拒绝复用
func (s *UserService) Logout(token string) {
	s.blacklistMutex.Lock()
	defer s.blacklistMutex.Unlock()

	// 顺带清理过期条目
	now := time.Now()
	for t, expiry := range s.tokenBlacklist {
		if now.After(expiry) {
			delete(s.tokenBlacklist, t)
		}
	}

	s.tokenBlacklist[token] = now.Add(24 * time.Hour)
}

// IsTokenBlacklisted 检查令牌是否已被撤销
func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	defer s.blacklistMutex.RUnlock()

	expiry, ok := s.tokenBlacklist[token]
	return ok && time.Now().Before(expiry)
}
