//go:build mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 移动端编译时返回 true
func IsMobile() bool {
	return true
}

// EnvFlag 读取布尔环境变量（"1"/"true" 为真）
func EnvFlag(name string) bool {
	switch os.Getenv(name) {
	case "1", "true", "TRUE", "yes":
		return true
	}
	return false
}
