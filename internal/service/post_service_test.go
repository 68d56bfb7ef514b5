package service

import (
	"testing"
	"time"

	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id int) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) List(limit, offset int) ([]*model.Post, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// TestCreatePostForcesAuthor 测试作者取自调用方身份
func TestCreatePostForcesAuthor(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("Create", mock.MatchedBy(func(p *model.Post) bool {
		return p.AuthorID == 7 && p.Text == "hello"
	})).Return(nil)

	post, err := svc.CreatePost(7, "hello", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, 7, post.AuthorID)
	repo.AssertExpectations(t)
}

// TestUpdatePostWrongAuthor 测试非作者修改帖子被拒绝，且帖子不变
func TestUpdatePostWrongAuthor(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	existing := &model.Post{ID: 10, AuthorID: 1, Text: "original"}
	repo.On("GetByID", 10).Return(existing, nil)

	text := "hacked"
	post, err := svc.UpdatePost(2, 10, PostUpdate{Text: &text})
	assert.Nil(t, post)

	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	assert.Equal(t, "cannot edit another user's post", appErr.Message)

	repo.AssertNotCalled(t, "Update", mock.Anything)
}

// TestUpdatePostKeepsPubDateAndAuthor 测试更新不会改动发布时间和作者
func TestUpdatePostKeepsPubDateAndAuthor(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	pubDate := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	existing := &model.Post{ID: 10, AuthorID: 1, Text: "original", PubDate: pubDate}
	repo.On("GetByID", 10).Return(existing, nil)
	repo.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)

	text := "edited"
	post, err := svc.UpdatePost(1, 10, PostUpdate{Text: &text})
	assert.NoError(t, err)
	assert.Equal(t, "edited", post.Text)
	assert.Equal(t, 1, post.AuthorID)
	assert.Equal(t, pubDate, post.PubDate)
	repo.AssertExpectations(t)
}

// TestUpdatePostImage 测试作者可以替换帖子图片
func TestUpdatePostImage(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	oldImage := "http://localhost:8080/uploads/posts/1/old.png"
	existing := &model.Post{ID: 10, AuthorID: 1, Text: "original", Image: &oldImage}
	repo.On("GetByID", 10).Return(existing, nil)
	repo.On("Update", mock.MatchedBy(func(p *model.Post) bool {
		return p.Image != nil && *p.Image == "http://localhost:8080/uploads/posts/1/new.png"
	})).Return(nil)

	newImage := "http://localhost:8080/uploads/posts/1/new.png"
	post, err := svc.UpdatePost(1, 10, PostUpdate{Image: &newImage})
	assert.NoError(t, err)
	assert.Equal(t, newImage, *post.Image)
	assert.Equal(t, "original", post.Text)
	repo.AssertExpectations(t)
}

// TestUpdatePostClearImage 测试传空字符串清除帖子图片
func TestUpdatePostClearImage(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	oldImage := "http://localhost:8080/uploads/posts/1/old.png"
	existing := &model.Post{ID: 10, AuthorID: 1, Text: "original", Image: &oldImage}
	repo.On("GetByID", 10).Return(existing, nil)
	repo.On("Update", mock.MatchedBy(func(p *model.Post) bool {
		return p.Image == nil
	})).Return(nil)

	empty := ""
	post, err := svc.UpdatePost(1, 10, PostUpdate{Image: &empty})
	assert.NoError(t, err)
	assert.Nil(t, post.Image)
	repo.AssertExpectations(t)
}

// TestDeletePostWrongAuthor 测试非作者删除帖子被拒绝
func TestDeletePostWrongAuthor(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	existing := &model.Post{ID: 10, AuthorID: 1, Text: "original"}
	repo.On("GetByID", 10).Return(existing, nil)

	err := svc.DeletePost(2, 10)

	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything)
}

// TestGetPostNotFound 测试不存在的帖子返回404错误
func TestGetPostNotFound(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("GetByID", 99).Return(nil, nil)

	post, err := svc.GetPost(99)
	assert.Nil(t, post)

	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrPostNotFound, appErr.Code)
}
