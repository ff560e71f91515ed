package types

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidOrder 订单参数不合法（本地校验失败，不会产生网络请求）
var ErrInvalidOrder = errors.New("invalid order request")

// Sizing 订单规模：按股数或按美元金额，二者互斥
type Sizing struct {
	// Quantity 股数
	Quantity *decimal.Decimal

	// Amount 美元金额（notional）
	Amount *decimal.Decimal
}

// Shares 按股数下单
func Shares(quantity decimal.Decimal) Sizing {
	return Sizing{Quantity: &quantity}
}

// Notional 按美元金额下单
func Notional(amount decimal.Decimal) Sizing {
	return Sizing{Amount: &amount}
}

// OrderRequest 下单请求（每次调用构造一份，dispatch 前先本地校验）
type OrderRequest struct {
	// Symbol 股票代码
	Symbol string

	// Side 订单方向
	Side Side

	// Type 订单类型
	Type OrderType

	// TimeInForce 订单有效期（为空时默认 gfd）
	TimeInForce TimeInForce

	// Quantity 股数，与 Amount 互斥
	Quantity *decimal.Decimal

	// Amount 美元金额（notional），与 Quantity 互斥
	Amount *decimal.Decimal

	// LimitPrice 限价，仅 limit / stop_limit 类型必填
	LimitPrice *decimal.Decimal

	// StopPrice 止损触发价，仅 stop / stop_limit 类型必填
	StopPrice *decimal.Decimal

	// ExtendedHours 是否允许盘前盘后成交
	ExtendedHours bool
}

// Validate 校验订单参数组合
// 规则：
//   - symbol 非空，side / type 合法
//   - Quantity 与 Amount 必须且只能设置一个，且为正数
//   - limit / stop_limit 必须带正的 LimitPrice，其余类型不允许携带
//   - stop / stop_limit 必须带正的 StopPrice，其余类型不允许携带
func (r *OrderRequest) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("%w: symbol 不能为空", ErrInvalidOrder)
	}

	switch r.Side {
	case SideBuy, SideSell:
	default:
		return fmt.Errorf("%w: 未知的订单方向 %q", ErrInvalidOrder, r.Side)
	}

	switch r.Type {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStop, OrderTypeStopLimit:
	default:
		return fmt.Errorf("%w: 未知的订单类型 %q", ErrInvalidOrder, r.Type)
	}

	if (r.Quantity == nil) == (r.Amount == nil) {
		return fmt.Errorf("%w: quantity 与 amount 必须且只能指定一个", ErrInvalidOrder)
	}
	if r.Quantity != nil && !r.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity 必须为正数", ErrInvalidOrder)
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount 必须为正数", ErrInvalidOrder)
	}

	needLimit := r.Type == OrderTypeLimit || r.Type == OrderTypeStopLimit
	if needLimit {
		if r.LimitPrice == nil || !r.LimitPrice.IsPositive() {
			return fmt.Errorf("%w: %s 订单必须携带正的 limit price", ErrInvalidOrder, r.Type)
		}
	} else if r.LimitPrice != nil {
		return fmt.Errorf("%w: %s 订单不允许携带 limit price", ErrInvalidOrder, r.Type)
	}

	needStop := r.Type == OrderTypeStop || r.Type == OrderTypeStopLimit
	if needStop {
		if r.StopPrice == nil || !r.StopPrice.IsPositive() {
			return fmt.Errorf("%w: %s 订单必须携带正的 stop price", ErrInvalidOrder, r.Type)
		}
	} else if r.StopPrice != nil {
		return fmt.Errorf("%w: %s 订单不允许携带 stop price", ErrInvalidOrder, r.Type)
	}

	return nil
}

// Order 服务端返回的订单（只记录初始状态，本库不追踪后续状态变化）
type Order struct {
	ID                 string           `json:"id"`
	URL                string           `json:"url"`
	RefID              string           `json:"ref_id"`
	Account            string           `json:"account"`
	Instrument         string           `json:"instrument"`
	Symbol             string           `json:"symbol"`
	State              string           `json:"state"` // 如 confirmed / queued / filled / cancelled
	Side               Side             `json:"side"`
	Type               string           `json:"type"`
	Trigger            string           `json:"trigger"`
	TimeInForce        TimeInForce      `json:"time_in_force"`
	Price              *decimal.Decimal `json:"price"`
	StopPrice          *decimal.Decimal `json:"stop_price"`
	Quantity           decimal.Decimal  `json:"quantity"`
	CumulativeQuantity decimal.Decimal  `json:"cumulative_quantity"`
	AveragePrice       *decimal.Decimal `json:"average_price"`
	Fees               decimal.Decimal  `json:"fees"`
	ExtendedHours      bool             `json:"extended_hours"`
	CreatedAt          string           `json:"created_at"`
	UpdatedAt          string           `json:"updated_at"`
	CancelURL          string           `json:"cancel"`
}
