package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeJSON = "application/json"
)

// 对象存储中测验记录归档前缀
const AttemptArchivePrefix = "attempts"
