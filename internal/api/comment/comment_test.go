package comment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/service"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
	os.Exit(m.Run())
}

// MockCommentRepository 是 CommentRepository 接口的模拟实现
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id int) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(postID int) ([]*model.Comment, error) {
	args := m.Called(postID)
	return args.Get(0).([]*model.Comment), args.Error(1)
}

// MockPostRepository 是 PostRepository 接口的模拟实现，用于帖子作用域解析
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

func newRouter(commentRepo *MockCommentRepository, postRepo *MockPostRepository, userID int) *gin.Engine {
	handler := NewCommentHandler(service.NewCommentService(commentRepo, postRepo))

	r := gin.New()
	r.GET("/posts/:id/comments", handler.ListComments)
	r.GET("/posts/:id/comments/:comment_id", handler.GetComment)

	authed := r.Group("/", func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	authed.POST("/posts/:id/comments", handler.CreateComment)
	authed.PATCH("/posts/:id/comments/:comment_id", handler.UpdateComment)
	authed.DELETE("/posts/:id/comments/:comment_id", handler.DeleteComment)
	return r
}

// TestListCommentsMissingPost 测试帖子不存在时评论列表返回404
func TestListCommentsMissingPost(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	router := newRouter(commentRepo, postRepo, 0)

	postRepo.On("GetByID", 99).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/posts/99/comments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post not found")
	commentRepo.AssertNotCalled(t, "ListByPost", mock.Anything)
}

// TestCreateComment 测试创建评论时作者和所属帖子都取自请求上下文
func TestCreateComment(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	router := newRouter(commentRepo, postRepo, 5)

	postRepo.On("GetByID", 1).Return(&model.Post{ID: 1, AuthorID: 2}, nil)
	commentRepo.On("Create", mock.MatchedBy(func(c *model.Comment) bool {
		return c.AuthorID == 5 && c.PostID == 1 && c.Text == "nice"
	})).Return(nil)

	// payload 中的 post 字段应被URL作用域覆盖
	body := []byte(`{"text": "nice", "post": 42}`)
	req, _ := http.NewRequest("POST", "/posts/1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["post"])
	commentRepo.AssertExpectations(t)
}

// TestCreateCommentMissingPost 测试给不存在的帖子评论返回404
func TestCreateCommentMissingPost(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	router := newRouter(commentRepo, postRepo, 5)

	postRepo.On("GetByID", 99).Return(nil, nil)

	body := []byte(`{"text": "nice"}`)
	req, _ := http.NewRequest("POST", "/posts/99/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// TestGetCommentFromAnotherPost 测试通过错误帖子访问评论返回404
func TestGetCommentFromAnotherPost(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	router := newRouter(commentRepo, postRepo, 0)

	postRepo.On("GetByID", 1).Return(&model.Post{ID: 1}, nil)
	commentRepo.On("GetByID", 3).Return(&model.Comment{ID: 3, PostID: 2, AuthorID: 5}, nil)

	req, _ := http.NewRequest("GET", "/posts/1/comments/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "comment not found")
}

// TestDeleteCommentWrongAuthor 测试非作者删除评论返回403
func TestDeleteCommentWrongAuthor(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	router := newRouter(commentRepo, postRepo, 9)

	postRepo.On("GetByID", 1).Return(&model.Post{ID: 1}, nil)
	commentRepo.On("GetByID", 3).Return(&model.Comment{ID: 3, PostID: 1, AuthorID: 5}, nil)

	req, _ := http.NewRequest("DELETE", "/posts/1/comments/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "cannot delete another user's comment")
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

// TestUpdateComment 测试作者本人更新评论返回200
func TestUpdateComment(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	router := newRouter(commentRepo, postRepo, 5)

	postRepo.On("GetByID", 1).Return(&model.Post{ID: 1}, nil)
	commentRepo.On("GetByID", 3).Return(&model.Comment{ID: 3, PostID: 1, AuthorID: 5, Text: "old"}, nil)
	commentRepo.On("Update", mock.MatchedBy(func(c *model.Comment) bool {
		return c.ID == 3 && c.Text == "new text"
	})).Return(nil)

	body := []byte(`{"text": "new text"}`)
	req, _ := http.NewRequest("PATCH", "/posts/1/comments/3", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new text")
	commentRepo.AssertExpectations(t)
}
