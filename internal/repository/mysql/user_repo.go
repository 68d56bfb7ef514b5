package mysql

import (
	"database/sql"

	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"go.uber.org/zap"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// Create 创建一个新用户
func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash, created_at)
              VALUES (?, ?, ?, NOW())`
	result, err := r.db.Exec(query, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	util.Logger.Info("用户创建成功", zap.Int("user_id", user.ID))
	return nil
}

// FindByID 通过ID查找用户
func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, created_at
              FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id))
}

// FindByEmail 通过邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, created_at
              FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRow(query, email))
}

// FindByUsername 通过用户名查找用户
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, created_at
              FROM users WHERE username = ?`
	return r.scanOne(r.db.QueryRow(query, username))
}

func (r *userRepository) scanOne(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		util.Logger.Error("查找用户失败", zap.Error(err))
		return nil, err
	}
	return &user, nil
}
