package mysql

import (
	"database/sql"

	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

// Create 插入帖子，pub_date 由数据库设置，随后回读完整行
func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (author_id, text, group_id, pub_date, image)
              VALUES (?, ?, ?, NOW(), ?)`
	result, err := r.db.Exec(query, post.AuthorID, post.Text, post.GroupID, nullable(post.Image))
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return err
	}

	created, err := r.GetByID(int(id))
	if err != nil {
		return err
	}
	*post = *created

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID))
	return nil
}

func (r *postRepository) GetByID(id int) (*model.Post, error) {
	query := `
        SELECT p.id, p.author_id, u.username, p.text, p.pub_date, p.image, p.group_id
        FROM posts p
        JOIN users u ON p.author_id = u.id
        WHERE p.id = ?`

	post, err := scanPost(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// Update 只更新可编辑字段，author_id 和 pub_date 不在更新语句中
func (r *postRepository) Update(post *model.Post) error {
	query := `UPDATE posts SET text = ?, group_id = ?, image = ? WHERE id = ?`
	_, err := r.db.Exec(query, post.Text, post.GroupID, nullable(post.Image), post.ID)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.Int("post_id", post.ID))
		return err
	}
	return nil
}

func (r *postRepository) Delete(id int) error {
	query := `DELETE FROM posts WHERE id = ?`
	_, err := r.db.Exec(query, id)
	if err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.Int("post_id", id))
		return err
	}
	util.Logger.Info("帖子删除成功", zap.Int("post_id", id))
	return nil
}

func (r *postRepository) List(limit, offset int) ([]*model.Post, error) {
	query := `
        SELECT p.id, p.author_id, u.username, p.text, p.pub_date, p.image, p.group_id
        FROM posts p
        JOIN users u ON p.author_id = u.id
        ORDER BY p.pub_date DESC, p.id DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		rows, err = r.db.Query(query, limit, offset)
	} else {
		rows, err = r.db.Query(query)
	}
	if err != nil {
		util.Logger.Error("获取帖子列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) Count() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total)
	return total, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	var post model.Post
	var image sql.NullString
	err := row.Scan(
		&post.ID, &post.AuthorID, &post.Author, &post.Text,
		&post.PubDate, &image, &post.GroupID,
	)
	if err != nil {
		return nil, err
	}
	if image.Valid {
		post.Image = &image.String
	}
	return &post, nil
}

func nullable(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
