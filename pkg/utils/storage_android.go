//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 初始化前创建 /data/data/{package}/saves 并确认可写
// gdata 在 Android 上使用应用私有目录，但不会预先创建子目录
func EnsureStorageDir() error {
	root := StorageDir()
	if root == "" {
		return fmt.Errorf("failed to detect Android package name")
	}

	dir := filepath.Join(root, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// StorageDir 返回应用私有目录；包名取自 /proc/self/cmdline
func StorageDir() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	name := string(bytes.TrimRight(bytes.SplitN(data, []byte{0}, 2)[0], "\n"))
	if name == "" {
		return ""
	}
	return filepath.Join("/data/data", name)
}
