package storage

import "mime/multipart"

// Uploader 是图片存储后端的统一接口。
// UploadFile 返回可直接写入数据库的完整访问URL。
type Uploader interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
