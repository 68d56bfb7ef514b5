package model

import "time"

// Post 帖子模型。作者在JSON中序列化为用户名，分组序列化为ID。
type Post struct {
	ID       int       `json:"id"`
	AuthorID int       `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
	Image    *string   `json:"image"`
	GroupID  *int      `json:"group"`
}

// Group 分组模型。通过API只读。
type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Comment 评论模型。始终属于一个帖子，post 字段对客户端只读。
type Comment struct {
	ID       int       `json:"id"`
	AuthorID int       `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
	PostID   int       `json:"post"`
}

// Follow 关注关系：user 关注 following。
// (following_id, user_id) 上有复合唯一约束。
type Follow struct {
	ID          int    `json:"-"`
	UserID      int    `json:"-"`
	User        string `json:"user"`
	FollowingID int    `json:"-"`
	Following   string `json:"following"`
}
