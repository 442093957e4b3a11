package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/engine.yaml": {Data: []byte("transition:\n  holdMs: 8000\n")},
		"data/extra.yaml":  {Data: []byte("x: 1\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	defer Init(nil)
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 测试未初始化时的访问
func TestNotInitialized(t *testing.T) {
	Init(nil)
	const want = "embedded package not initialized, call Init() first"

	if _, err := Open(EngineConfigPath); err == nil || err.Error() != want {
		t.Errorf("Open: unexpected error %v", err)
	}
	if _, err := ReadFile(EngineConfigPath); err == nil || err.Error() != want {
		t.Errorf("ReadFile: unexpected error %v", err)
	}
	if _, err := Glob("data/*.yaml"); err == nil || err.Error() != want {
		t.Errorf("Glob: unexpected error %v", err)
	}
	if Exists(EngineConfigPath) {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试路径规范化与读取
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/engine.yaml", false},
		{"./ 前缀", "./data/engine.yaml", false},
		{"无效前缀", "assets/engine.yaml", true},
		{"文件不存在", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && len(data) == 0 {
				t.Error("读取内容为空")
			}
		})
	}

	_, err := Open("invalid/path.yaml")
	if err == nil || err.Error() != "unknown resource path prefix: invalid/path.yaml (must start with 'data/')" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestGlobAndExists 测试匹配与存在性检查
func TestGlobAndExists(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob: got %v, want 2 files", matches)
	}

	if !Exists(EngineConfigPath) {
		t.Error("engine.yaml 应存在")
	}
	if Exists("data/nonexistent.yaml") {
		t.Error("Expected Exists() to return false for non-existent file")
	}
}
