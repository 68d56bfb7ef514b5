package service

import (
	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/repository/interfaces"
)

// CommentService 的每个操作都以帖子ID为作用域：
// 帖子不存在时直接返回404，不执行任何评论逻辑。
type CommentService struct {
	commentRepo interfaces.CommentRepository
	postRepo    interfaces.PostRepository
}

func NewCommentService(commentRepo interfaces.CommentRepository, postRepo interfaces.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) resolvePost(postID int) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "获取帖子失败", err)
	}
	if post == nil {
		return errors.New(errors.ErrPostNotFound, "post not found")
	}
	return nil
}

func (s *CommentService) ListComments(postID int) ([]*model.Comment, error) {
	if err := s.resolvePost(postID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取评论列表失败", err)
	}
	return comments, nil
}

// GetComment 返回指定帖子下的评论，评论属于其他帖子时同样返回404
func (s *CommentService) GetComment(postID, commentID int) (*model.Comment, error) {
	if err := s.resolvePost(postID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取评论失败", err)
	}
	if comment == nil || comment.PostID != postID {
		return nil, errors.New(errors.ErrCommentNotFound, "comment not found")
	}
	return comment, nil
}

// CreateComment 创建评论，作者取调用方身份，帖子取URL作用域，
// payload 中出现的这两个字段一律忽略
func (s *CommentService) CreateComment(callerID, postID int, text string) (*model.Comment, error) {
	if err := s.resolvePost(postID); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		AuthorID: callerID,
		PostID:   postID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建评论失败", err)
	}
	return comment, nil
}

// UpdateComment 只有评论作者可以修改
func (s *CommentService) UpdateComment(callerID, postID, commentID int, text string) (*model.Comment, error) {
	comment, err := s.GetComment(postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, errors.New(errors.ErrForbidden, "cannot edit another user's comment")
	}

	comment.Text = text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新评论失败", err)
	}
	return comment, nil
}

// DeleteComment 只有评论作者可以删除
func (s *CommentService) DeleteComment(callerID, postID, commentID int) error {
	comment, err := s.GetComment(postID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return errors.New(errors.ErrForbidden, "cannot delete another user's comment")
	}
	if err := s.commentRepo.Delete(commentID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除评论失败", err)
	}
	return nil
}
