package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "gohood.log")
	if err := Init(Config{Level: "debug", OutputFile: logFile}); err != nil {
		t.Fatalf("init: %v", err)
	}

	Debugf("调试信息 key=%s", "value")
	Infof("普通信息")
	WithField("symbol", "AAPL").Warn("字段日志")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"调试信息 key=value", "普通信息", "字段日志", "symbol=AAPL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestInitInvalidLevelFallsBackToInfo(t *testing.T) {
	if err := Init(Config{Level: "shout"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := Logger.GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("expected info level, got %v", got)
	}
}

func TestInitDefault(t *testing.T) {
	if err := InitDefault(); err != nil {
		t.Fatalf("init default: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger not set")
	}
}

func TestHelpersSafeBeforeInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	// 未初始化时所有辅助函数都应安全返回
	Debugf("x")
	Infof("x")
	Warnf("x")
	Errorf("x")
	if entry := WithField("k", "v"); entry == nil {
		t.Fatal("WithField returned nil")
	}
	if entry := WithFields(logrus.Fields{"k": "v"}); entry == nil {
		t.Fatal("WithFields returned nil")
	}
}
