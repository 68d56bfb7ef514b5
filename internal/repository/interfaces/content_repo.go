package interfaces

import "github.com/VlKazmin/api-final-yatube/internal/model"

// PostRepository 定义了帖子的数据库操作接口。
// List 的 limit <= 0 表示不分页返回全部。
type PostRepository interface {
	Create(post *model.Post) error
	GetByID(id int) (*model.Post, error)
	Update(post *model.Post) error
	Delete(id int) error
	List(limit, offset int) ([]*model.Post, error)
	Count() (int, error)
}

// GroupRepository 定义了分组的数据库操作接口，API层面只读
type GroupRepository interface {
	List() ([]*model.Group, error)
	GetByID(id int) (*model.Group, error)
}

// CommentRepository 定义了评论的数据库操作接口
type CommentRepository interface {
	Create(comment *model.Comment) error
	GetByID(id int) (*model.Comment, error)
	Update(comment *model.Comment) error
	Delete(id int) error
	ListByPost(postID int) ([]*model.Comment, error)
}

// FollowRepository 定义了关注关系的数据库操作接口。
// Create 在命中 (following_id, user_id) 唯一约束时返回
// "already following this author" 的校验错误。
type FollowRepository interface {
	Create(follow *model.Follow) error
	Exists(userID, followingID int) (bool, error)
	ListByUser(userID int, search string) ([]*model.Follow, error)
}
