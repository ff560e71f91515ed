package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/robinbot/gohood/pkg/logger"
	"github.com/robinbot/gohood/pkg/sessionstore"
	"github.com/robinbot/gohood/robinhood/client"
)

// session-init 初始化本地会话库：确保 badger 里有一个稳定的 device token。
// device token 必须跨登录复用，否则每次登录都会触发新设备验证。
func main() {
	var (
		envPath    = flag.String("env", ".env", "optional .env file path")
		configPath = flag.String("config", getenv("GOHOOD_CONFIG", "config.yaml"), "yaml config file path")
		dbPath     = flag.String("badger", getenv("GOHOOD_SESSION_DB", "data/session.badger"), "badger session db path")
		rotate     = flag.Bool("rotate", false, "force a new device token even if one exists")
	)
	flag.Parse()

	// .env 不存在不报错，环境变量仍然生效
	_ = godotenv.Load(*envPath)

	cfg, err := client.LoadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.OutputFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		fatal(err)
	}

	ss, err := sessionstore.Open(sessionstore.OpenOptions{Path: *dbPath})
	if err != nil {
		fatal(err)
	}
	defer ss.Close()

	token, err := ss.DeviceToken()
	if err != nil {
		fatal(err)
	}
	if token != "" && !*rotate {
		logger.Infof("device token 已存在：%s", *dbPath)
		fmt.Println(token)
		return
	}

	token = uuid.NewString()
	if err := ss.SetDeviceToken(token); err != nil {
		fatal(err)
	}
	logger.Infof("已写入新 device token：%s", *dbPath)
	fmt.Println(token)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
