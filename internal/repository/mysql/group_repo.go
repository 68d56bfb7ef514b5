package mysql

import (
	"database/sql"

	"github.com/VlKazmin/api-final-yatube/internal/model"
	"github.com/VlKazmin/api-final-yatube/internal/util"

	"go.uber.org/zap"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) List() ([]*model.Group, error) {
	query := `SELECT id, title, slug, description FROM groups ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		util.Logger.Error("获取分组列表失败", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	groups := []*model.Group{}
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, err
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) GetByID(id int) (*model.Group, error) {
	query := `SELECT id, title, slug, description FROM groups WHERE id = ?`
	var g model.Group
	err := r.db.QueryRow(query, id).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		util.Logger.Error("查找分组失败", zap.Error(err), zap.Int("group_id", id))
		return nil, err
	}
	return &g, nil
}
