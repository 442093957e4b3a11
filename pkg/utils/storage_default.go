//go:build !android

package utils

// EnsureStorageDir 准备偏好存储目录
// 桌面与 iOS 上 gdata 会自行创建目录，这里什么都不用做
func EnsureStorageDir() error {
	return nil
}

// StorageDir 返回平台特定的存储根目录，由 gdata 决定时返回空字符串
func StorageDir() string {
	return ""
}
