package service

import (
	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/repository/interfaces"
)

// GroupService 只提供读操作，分组不能通过API创建或修改
type GroupService struct {
	repo interfaces.GroupRepository
}

func NewGroupService(repo interfaces.GroupRepository) *GroupService {
	return &GroupService{repo}
}

func (s *GroupService) ListGroups() ([]*model.Group, error) {
	groups, err := s.repo.List()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取分组列表失败", err)
	}
	return groups, nil
}

func (s *GroupService) GetGroup(id int) (*model.Group, error) {
	group, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取分组失败", err)
	}
	if group == nil {
		return nil, errors.New(errors.ErrGroupNotFound, "group not found")
	}
	return group, nil
}
