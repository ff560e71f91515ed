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
	"github.com/shopspring/decimal"

	"github.com/robinbot/gohood/robinhood/client"
	"github.com/robinbot/gohood/robinhood/types"
)

// 示例：限价下单
// 使用方法：
//   export ROBINHOOD_USERNAME="you@example.com"
//   export ROBINHOOD_PASSWORD="your_password"
//   export SYMBOL="AAPL"
//   export SIDE="BUY"  # BUY 或 SELL
//   export LIMIT_PRICE="150.00"
//   export QUANTITY="1"  # 股数；与 AMOUNT 二选一
//   export AMOUNT="100.00"  # 美元金额；与 QUANTITY 二选一
//   go run place_order.go

func main() {
	_ = godotenv.Load()

	username := os.Getenv("ROBINHOOD_USERNAME")
	password := os.Getenv("ROBINHOOD_PASSWORD")
	if username == "" || password == "" {
		fmt.Fprintf(os.Stderr, "错误: 请设置 ROBINHOOD_USERNAME 和 ROBINHOOD_PASSWORD 环境变量\n")
		os.Exit(1)
	}

	symbol := os.Getenv("SYMBOL")
	if symbol == "" {
		fmt.Fprintf(os.Stderr, "错误: 请设置 SYMBOL 环境变量\n")
		os.Exit(1)
	}

	sideStr := strings.ToUpper(os.Getenv("SIDE"))
	if sideStr != "BUY" && sideStr != "SELL" {
		fmt.Fprintf(os.Stderr, "错误: SIDE 必须是 BUY 或 SELL\n")
		os.Exit(1)
	}

	limitPrice, err := decimal.NewFromString(os.Getenv("LIMIT_PRICE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: LIMIT_PRICE 必须是数字: %v\n", err)
		os.Exit(1)
	}

	var sizing types.Sizing
	quantityStr := os.Getenv("QUANTITY")
	amountStr := os.Getenv("AMOUNT")
	switch {
	case quantityStr != "" && amountStr != "":
		fmt.Fprintf(os.Stderr, "错误: QUANTITY 与 AMOUNT 只能设置一个\n")
		os.Exit(1)
	case quantityStr != "":
		quantity, err := decimal.NewFromString(quantityStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "错误: QUANTITY 必须是数字: %v\n", err)
			os.Exit(1)
		}
		sizing = types.Shares(quantity)
	case amountStr != "":
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "错误: AMOUNT 必须是数字: %v\n", err)
			os.Exit(1)
		}
		sizing = types.Notional(amount)
	default:
		fmt.Fprintf(os.Stderr, "错误: 请设置 QUANTITY 或 AMOUNT 环境变量\n")
		os.Exit(1)
	}

	c := client.New()
	if err := c.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	ctx := context.Background()

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

	fmt.Println("正在提交订单...")
	var order *types.Order
	if sideStr == "BUY" {
		order, err = c.PlaceLimitBuyOrder(ctx, symbol, limitPrice, sizing)
	} else {
		order, err = c.PlaceLimitSellOrder(ctx, symbol, limitPrice, sizing)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 下单失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ 订单提交成功！")
	jsonData, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 序列化数据失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))

	fmt.Printf("\n订单 ID: %s  状态: %s\n", order.ID, order.State)
}
