package util

import (
	"net/url"
	"strconv"

	"github.com/VlKazmin/api-final-yatube/config"

	"github.com/gin-gonic/gin"
)

// Pagination 表示 limit/offset 分页参数。
// 请求不带 limit 参数时分页不生效，列表端点返回完整数组。
type Pagination struct {
	Limit   int
	Offset  int
	enabled bool
}

// 单页最大条数上限
const maxPageLimit = 100

// ParsePagination 从查询参数中解析 limit/offset
func ParsePagination(c *gin.Context) Pagination {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return Pagination{}
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return Pagination{}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset, enabled: true}
}

// Enabled 报告本次请求是否启用分页
func (p Pagination) Enabled() bool {
	return p.enabled
}

// Envelope 构造分页响应 {count, next, previous, results}
func (p Pagination) Envelope(c *gin.Context, count int, results interface{}) gin.H {
	var next, previous interface{}

	if p.Offset+p.Limit < count {
		next = pageURL(c, p.Limit, p.Offset+p.Limit)
	}
	if p.Offset > 0 {
		prevOffset := p.Offset - p.Limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		previous = pageURL(c, p.Limit, prevOffset)
	}

	return gin.H{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

// pageURL 构造同一端点上指定偏移的绝对链接
func pageURL(c *gin.Context, limit, offset int) string {
	base, err := url.Parse(config.AppConfig.BackendURL)
	if err != nil {
		base = &url.URL{}
	}
	base.Path = c.Request.URL.Path

	q := c.Request.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	base.RawQuery = q.Encode()

	return base.String()
}
