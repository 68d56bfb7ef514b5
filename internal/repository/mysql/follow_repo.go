package mysql

import (
	"database/sql"
	"strings"

	"github.com/VlKazmin/api-final-yatube/internal/errors"
	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQL 唯一约束冲突错误码
const errDuplicateEntry = 1062

// LIKE 通配符转义，搜索词中的 % 和 _ 按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) *followRepository {
	return &followRepository{db: db}
}

// Create 插入关注关系。两个并发请求可能同时通过存在性检查，
// 此时唯一约束让后提交者失败，这里把该失败翻译成与预检查相同的校验错误，
// 保证对外契约不随竞态结果变化。
func (r *followRepository) Create(follow *model.Follow) error {
	query := `INSERT INTO follows (user_id, following_id) VALUES (?, ?)`
	result, err := r.db.Exec(query, follow.UserID, follow.FollowingID)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == errDuplicateEntry {
			util.Logger.Warn("关注关系已存在",
				zap.Int("user_id", follow.UserID),
				zap.Int("following_id", follow.FollowingID))
			return errors.New(errors.ErrValidation, "already following this author")
		}
		util.Logger.Error("创建关注关系失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	follow.ID = int(id)

	util.Logger.Info("关注关系创建成功",
		zap.Int("user_id", follow.UserID),
		zap.Int("following_id", follow.FollowingID))
	return nil
}

func (r *followRepository) Exists(userID, followingID int) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM follows WHERE user_id = ? AND following_id = ?`
	err := r.db.QueryRow(query, userID, followingID).Scan(&count)
	if err != nil {
		util.Logger.Error("检查关注状态失败", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// ListByUser 返回指定用户的全部关注，search 非空时按被关注者用户名子串过滤
func (r *followRepository) ListByUser(userID int, search string) ([]*model.Follow, error) {
	query := `
        SELECT f.id, f.user_id, u1.username, f.following_id, u2.username
        FROM follows f
        JOIN users u1 ON f.user_id = u1.id
        JOIN users u2 ON f.following_id = u2.id
        WHERE f.user_id = ?`

	args := []interface{}{userID}
	if search != "" {
		query += ` AND u2.username LIKE CONCAT('%', ?, '%')`
		args = append(args, escapeLike(search))
	}
	query += ` ORDER BY f.id`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		util.Logger.Error("获取关注列表失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	follows := []*model.Follow{}
	for rows.Next() {
		var f model.Follow
		err := rows.Scan(&f.ID, &f.UserID, &f.User, &f.FollowingID, &f.Following)
		if err != nil {
			return nil, err
		}
		follows = append(follows, &f)
	}
	return follows, rows.Err()
}
