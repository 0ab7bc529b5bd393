package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/card.yaml":      {Data: []byte("recipient: Kayla\n")},
		"data/particles.yaml": {Data: []byte("hearts: {}\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
}

// TestNotInitialized 未初始化时所有读取都返回错误
func TestNotInitialized(t *testing.T) {
	Init(nil)

	if _, err := Open("data/card.yaml"); err == nil || err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected Open error: %v", err)
	}
	if _, err := ReadFile("data/card.yaml"); err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	}
	if _, err := Glob("data/*.yaml"); err == nil {
		t.Error("Expected error when calling Glob() before Init()")
	}
	if _, err := FS(); err == nil {
		t.Error("Expected error when calling FS() before Init()")
	}
	if Exists("data/card.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 读取、路径标准化和前缀检查
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"普通路径", "data/card.yaml", "recipient: Kayla\n", false},
		{"带 ./ 前缀", "./data/card.yaml", "recipient: Kayla\n", false},
		{"未知前缀", "assets/card.yaml", "", true},
		{"文件不存在", "data/missing.yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if string(got) != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestGlobAndExists 测试文件匹配
func TestGlobAndExists(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(matches))
	}
	if !Exists("data/particles.yaml") {
		t.Error("Expected data/particles.yaml to exist")
	}
	if Exists("data/none.yaml") {
		t.Error("Expected data/none.yaml not to exist")
	}
}
