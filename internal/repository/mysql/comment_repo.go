package mysql

import (
	"database/sql"

	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"go.uber.org/zap"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db: db}
}

// Create 插入评论，created 由数据库设置，随后回读完整行
func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (author_id, post_id, text, created)
              VALUES (?, ?, ?, NOW())`
	result, err := r.db.Exec(query, comment.AuthorID, comment.PostID, comment.Text)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	created, err := r.GetByID(int(id))
	if err != nil {
		return err
	}
	*comment = *created

	util.Logger.Info("评论创建成功",
		zap.Int("comment_id", comment.ID),
		zap.Int("post_id", comment.PostID))
	return nil
}

func (r *commentRepository) GetByID(id int) (*model.Comment, error) {
	query := `
        SELECT c.id, c.author_id, u.username, c.text, c.created, c.post_id
        FROM comments c
        JOIN users u ON c.author_id = u.id
        WHERE c.id = ?`

	var comment model.Comment
	err := r.db.QueryRow(query, id).Scan(
		&comment.ID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.Created, &comment.PostID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Update 只有 text 可编辑，post_id 和 created 不在更新语句中
func (r *commentRepository) Update(comment *model.Comment) error {
	query := `UPDATE comments SET text = ? WHERE id = ?`
	_, err := r.db.Exec(query, comment.Text, comment.ID)
	if err != nil {
		util.Logger.Error("更新评论失败", zap.Error(err), zap.Int("comment_id", comment.ID))
		return err
	}
	return nil
}

func (r *commentRepository) Delete(id int) error {
	query := `DELETE FROM comments WHERE id = ?`
	_, err := r.db.Exec(query, id)
	if err != nil {
		util.Logger.Error("删除评论失败", zap.Error(err), zap.Int("comment_id", id))
		return err
	}
	return nil
}

func (r *commentRepository) ListByPost(postID int) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.author_id, u.username, c.text, c.created, c.post_id
        FROM comments c
        JOIN users u ON c.author_id = u.id
        WHERE c.post_id = ?
        ORDER BY c.created ASC, c.id ASC`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		util.Logger.Error("获取评论列表失败", zap.Error(err), zap.Int("post_id", postID))
		return nil, err
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var c model.Comment
		err := rows.Scan(&c.ID, &c.AuthorID, &c.Author, &c.Text, &c.Created, &c.PostID)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
