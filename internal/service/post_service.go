package service

import (
	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/repository/interfaces"
)

// PostUpdate 描述一次帖子更新，nil 字段表示不修改，
// Image 指向空字符串表示清除图片。
// 作者和发布时间不可修改，因此这里没有对应字段。
type PostUpdate struct {
	Text    *string
	GroupID *int
	Image   *string
}

type PostService struct {
	repo interfaces.PostRepository
}

func NewPostService(repo interfaces.PostRepository) *PostService {
	return &PostService{repo}
}

// CreatePost 创建帖子，作者由调用方身份决定，payload 中的作者字段被忽略
func (s *PostService) CreatePost(authorID int, text string, groupID *int, image string) (*model.Post, error) {
	post := &model.Post{
		AuthorID: authorID,
		Text:     text,
		GroupID:  groupID,
	}
	if image != "" {
		post.Image = &image
	}
	if err := s.repo.Create(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}
	return post, nil
}

func (s *PostService) GetPost(id int) (*model.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "post not found")
	}
	return post, nil
}

func (s *PostService) ListPosts(limit, offset int) ([]*model.Post, int, error) {
	total, err := s.repo.Count()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "获取帖子总数失败", err)
	}
	posts, err := s.repo.List(limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "获取帖子列表失败", err)
	}
	return posts, total, nil
}

// UpdatePost 更新帖子，只有作者本人可以修改，pub_date 和作者保持不变
func (s *PostService) UpdatePost(callerID, postID int, update PostUpdate) (*model.Post, error) {
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, errors.New(errors.ErrForbidden, "cannot edit another user's post")
	}

	if update.Text != nil {
		post.Text = *update.Text
	}
	if update.GroupID != nil {
		post.GroupID = update.GroupID
	}
	if update.Image != nil {
		if *update.Image == "" {
			post.Image = nil
		} else {
			post.Image = update.Image
		}
	}

	if err := s.repo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}
	return post, nil
}

// DeletePost 删除帖子，只有作者本人可以删除
func (s *PostService) DeletePost(callerID, postID int) error {
	post, err := s.GetPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return errors.New(errors.ErrForbidden, "cannot delete another user's post")
	}
	if err := s.repo.Delete(postID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}
	return nil
}
