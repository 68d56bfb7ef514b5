package service

import (
	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/repository/interfaces"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"go.uber.org/zap"
)

// FollowService 管理关注关系。只有 list 和 create，
// 列表永远限定为调用方自己的关注。
type FollowService struct {
	followRepo interfaces.FollowRepository
	userRepo   interfaces.UserRepository
}

func NewFollowService(followRepo interfaces.FollowRepository, userRepo interfaces.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// ListFollows 返回调用方自己的关注，search 按被关注者用户名过滤
func (s *FollowService) ListFollows(callerID int, search string) ([]*model.Follow, error) {
	follows, err := s.followRepo.ListByUser(callerID, search)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取关注列表失败", err)
	}
	return follows, nil
}

// Follow 创建关注关系，校验按固定顺序执行：
// 目标用户存在 → 非自己 → 尚未关注 → 插入。
// 插入撞上唯一约束时仓库层返回与预检查相同的错误。
func (s *FollowService) Follow(callerID int, followingUsername string) (*model.Follow, error) {
	target, err := s.userRepo.FindByUsername(followingUsername)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查找用户失败", err)
	}
	if target == nil {
		return nil, errors.New(errors.ErrValidation, "user with this username does not exist")
	}

	if target.ID == callerID {
		return nil, errors.New(errors.ErrValidation, "cannot follow yourself")
	}

	exists, err := s.followRepo.Exists(callerID, target.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "检查关注状态失败", err)
	}
	if exists {
		return nil, errors.New(errors.ErrValidation, "already following this author")
	}

	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查找用户失败", err)
	}
	if caller == nil {
		return nil, errors.New(errors.ErrUserNotFound, "user not found")
	}

	follow := &model.Follow{
		UserID:      callerID,
		User:        caller.Username,
		FollowingID: target.ID,
		Following:   target.Username,
	}
	if err := s.followRepo.Create(follow); err != nil {
		return nil, err
	}

	util.Logger.Info("关注成功",
		zap.String("user", follow.User),
		zap.String("following", follow.Following))
	return follow, nil
}
