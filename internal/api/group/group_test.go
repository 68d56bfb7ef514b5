package group

import (
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

// MockGroupRepository 是 GroupRepository 接口的模拟实现
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) List() ([]*model.Group, error) {
	args := m.Called()
	return args.Get(0).([]*model.Group), args.Error(1)
}

func (m *MockGroupRepository) GetByID(id int) (*model.Group, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func newRouter(repo *MockGroupRepository) *gin.Engine {
	handler := NewGroupHandler(service.NewGroupService(repo))

	r := gin.New()
	r.GET("/groups", handler.ListGroups)
	r.GET("/groups/:id", handler.GetGroup)
	return r
}

// TestListGroupsAnonymous 测试未认证的分组列表请求返回200
func TestListGroupsAnonymous(t *testing.T) {
	repo := new(MockGroupRepository)
	router := newRouter(repo)

	repo.On("List").Return([]*model.Group{
		{ID: 1, Title: "技术", Slug: "tech", Description: "技术讨论"},
		{ID: 2, Title: "生活", Slug: "life", Description: ""},
	}, nil)

	req, _ := http.NewRequest("GET", "/groups", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var groups []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &groups)
	assert.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Equal(t, "tech", groups[0]["slug"])
}

// TestGetGroup 测试按ID获取分组详情
func TestGetGroup(t *testing.T) {
	repo := new(MockGroupRepository)
	router := newRouter(repo)

	repo.On("GetByID", 1).Return(&model.Group{ID: 1, Title: "技术", Slug: "tech"}, nil)

	req, _ := http.NewRequest("GET", "/groups/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tech")
}

// TestGetGroupNotFound 测试不存在的分组返回404
func TestGetGroupNotFound(t *testing.T) {
	repo := new(MockGroupRepository)
	router := newRouter(repo)

	repo.On("GetByID", 99).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/groups/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "group not found")
}

// TestGetGroupBadID 测试非数字ID返回400
func TestGetGroupBadID(t *testing.T) {
	repo := new(MockGroupRepository)
	router := newRouter(repo)

	req, _ := http.NewRequest("GET", "/groups/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
