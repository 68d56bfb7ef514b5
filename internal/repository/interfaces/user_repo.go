package interfaces

import "github.com/VlKazmin/api-final-yatube/internal/model"

// UserRepository 接口定义了用户仓库应该实现的方法。
// 查找方法在没有匹配行时返回 (nil, nil)。
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
}
