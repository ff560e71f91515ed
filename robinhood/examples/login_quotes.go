//go:build ignore
// +build ignore

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/robinbot/gohood/pkg/logger"
	"github.com/robinbot/gohood/robinhood/client"
)

// 示例：登录并查询报价
// 使用方法：
//   export ROBINHOOD_USERNAME="you@example.com"
//   export ROBINHOOD_PASSWORD="your_password"
//   export SYMBOLS="AAPL,MSFT"  # 可选，默认 AAPL
//   export GOHOOD_CONFIG="config.yaml"  # 可选，客户端与日志配置
//   go run login_quotes.go
//
// 账户开启 MFA 时会在终端提示输入验证码。

func main() {
	_ = godotenv.Load()

	cfg, err := client.LoadConfig(os.Getenv("GOHOOD_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.OutputFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}

	username := os.Getenv("ROBINHOOD_USERNAME")
	password := os.Getenv("ROBINHOOD_PASSWORD")
	if username == "" || password == "" {
		fmt.Fprintf(os.Stderr, "错误: 请设置 ROBINHOOD_USERNAME 和 ROBINHOOD_PASSWORD 环境变量\n")
		os.Exit(1)
	}

	symbolsStr := os.Getenv("SYMBOLS")
	if symbolsStr == "" {
		symbolsStr = "AAPL"
	}
	symbols := strings.Split(symbolsStr, ",")

	opts := append(cfg.Options(), client.WithLogger(logger.Logger))
	c := client.New(opts...)
	if err := c.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	ctx := context.Background()

	// 终端取码回调：MFA / challenge 都走这里
	prompt := func(ctx context.Context, kind string) (string, error) {
		fmt.Printf("请输入 %s 验证码: ", kind)
		reader := bufio.NewReader(os.Stdin)
		code, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(code), nil
	}

	fmt.Println("正在登录...")
	if err := c.Login(ctx, username, password, client.WithCodeProvider(prompt)); err != nil {
		fmt.Fprintf(os.Stderr, "错误: 登录失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ 登录成功")
	defer c.Logout(ctx)

	quotes, err := c.GetQuotes(ctx, symbols, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 查询报价失败: %v\n", err)
		os.Exit(1)
	}

	for _, q := range quotes {
		fmt.Printf("%s  买一 %s  卖一 %s  最新 %s\n",
			q.Symbol, q.BidPrice, q.AskPrice, q.LastTradePrice)
	}

	fundamentals, err := c.GetFundamentals(ctx, symbols, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 查询基本面失败: %v\n", err)
		os.Exit(1)
	}

	jsonData, err := json.MarshalIndent(fundamentals, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 序列化数据失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}
