package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/robinbot/gohood/robinhood/types"
)

// OrderOption 下单可选参数
type OrderOption func(*types.OrderRequest)

// WithTimeInForce 设置订单有效期（默认 gfd）
func WithTimeInForce(tif types.TimeInForce) OrderOption {
	return func(r *types.OrderRequest) { r.TimeInForce = tif }
}

// WithExtendedHours 允许盘前盘后成交
func WithExtendedHours(enabled bool) OrderOption {
	return func(r *types.OrderRequest) { r.ExtendedHours = enabled }
}

// GetOrders 获取历史订单（按时间倒序分页）
// pages <= 0 表示拉完所有分页。
func (c *Client) GetOrders(ctx context.Context, pages int) ([]types.Order, error) {
	return paginate[types.Order](ctx, c, EndpointOrders, nil, pages)
}

// GetOrder 获取单个订单
func (c *Client) GetOrder(ctx context.Context, orderID string) (*types.Order, error) {
	var out types.Order
	if err := c.do(ctx, http.MethodGet, EndpointOrders+orderID+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelOrder 撤单
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPost, EndpointOrders+orderID+"/cancel/", nil, nil)
}

// dollarAmount 按美元金额下单的载荷片段
type dollarAmount struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

// orderPayload 下单请求体
type orderPayload struct {
	Account           string            `json:"account"`
	Instrument        string            `json:"instrument"`
	Symbol            string            `json:"symbol"`
	RefID             string            `json:"ref_id"`
	Side              types.Side        `json:"side"`
	Type              string            `json:"type"`
	Trigger           string            `json:"trigger"`
	TimeInForce       types.TimeInForce `json:"time_in_force"`
	ExtendedHours     bool              `json:"extended_hours"`
	Price             *decimal.Decimal  `json:"price,omitempty"`
	StopPrice         *decimal.Decimal  `json:"stop_price,omitempty"`
	Quantity          *decimal.Decimal  `json:"quantity,omitempty"`
	DollarBasedAmount *dollarAmount     `json:"dollar_based_amount,omitempty"`
}

// PlaceOrder 通用下单入口，8 个类型化辅助方法都汇入这里
//
// 流程：本地校验参数组合 → 解析 symbol 对应的 instrument（一次查询调用）
// → 构造请求体 → 提交订单。返回服务端分配的订单 ID 与初始状态，
// 本库不追踪订单后续的状态变化。
func (c *Client) PlaceOrder(ctx context.Context, req types.OrderRequest) (*types.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.TimeInForce == "" {
		req.TimeInForce = types.TimeInForceGFD
	}
	if err := c.ensureAccount(ctx); err != nil {
		return nil, err
	}

	payload := orderPayload{
		Account:       c.accountURL,
		Symbol:        req.Symbol,
		RefID:         uuid.NewString(),
		Side:          req.Side,
		TimeInForce:   req.TimeInForce,
		ExtendedHours: req.ExtendedHours,
		Quantity:      req.Quantity,
	}
	payload.Type, payload.Trigger = wireOrderType(req.Type)

	// symbol → instrument 解析：市价单走报价端点（载荷需要参考价），
	// 其余类型走 instrument 端点。两条路径都是一次查询调用。
	var refPrice decimal.Decimal
	switch req.Type {
	case types.OrderTypeMarket:
		quotes, err := c.GetQuotes(ctx, []string{req.Symbol}, nil)
		if err != nil {
			return nil, err
		}
		if len(quotes) == 0 {
			return nil, newRequestError(http.MethodGet, EndpointQuotes,
				errors.New("报价结果为空: "+req.Symbol))
		}
		payload.Instrument = quotes[0].Instrument
		if req.Side == types.SideBuy {
			refPrice = quotes[0].AskPrice
		} else {
			refPrice = quotes[0].BidPrice
		}
		payload.Price = &refPrice

	default:
		instruments, err := c.GetInstruments(ctx, req.Symbol, nil, 1)
		if err != nil {
			return nil, err
		}
		if len(instruments) == 0 {
			return nil, newRequestError(http.MethodGet, EndpointInstruments,
				errors.New("未找到标的: "+req.Symbol))
		}
		payload.Instrument = instruments[0].URL
	}

	switch req.Type {
	case types.OrderTypeLimit, types.OrderTypeStopLimit:
		payload.Price = req.LimitPrice
		refPrice = *req.LimitPrice
	case types.OrderTypeStop:
		refPrice = *req.StopPrice
		if req.Side == types.SideBuy {
			payload.Price = req.StopPrice
		}
	}
	if req.StopPrice != nil {
		payload.StopPrice = req.StopPrice
	}

	// notional 下单：金额换算为股数（6 位小数），金额本身保留 2 位
	// 停牌或未开盘的标的报价可能为 0，换算前必须拦下
	if req.Amount != nil {
		if refPrice.IsZero() {
			return nil, newRequestError(http.MethodPost, EndpointOrders,
				errors.New("参考价为 0，无法按金额换算股数: "+req.Symbol))
		}
		qty := req.Amount.DivRound(refPrice, 6)
		payload.Quantity = &qty
		payload.DollarBasedAmount = &dollarAmount{
			Amount:       req.Amount.Round(2),
			CurrencyCode: "USD",
		}
	}

	var out types.Order
	if err := c.do(ctx, http.MethodPost, EndpointOrders, &requestOptions{
		body:       payload,
		wantStatus: http.StatusCreated,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// wireOrderType 把订单类型映射为线上格式的 type / trigger 组合
func wireOrderType(t types.OrderType) (string, string) {
	switch t {
	case types.OrderTypeLimit:
		return "limit", "immediate"
	case types.OrderTypeStop:
		return "market", "stop"
	case types.OrderTypeStopLimit:
		return "limit", "stop"
	default:
		return "market", "immediate"
	}
}

func (c *Client) placeTyped(
	ctx context.Context,
	symbol string,
	side types.Side,
	orderType types.OrderType,
	limitPrice, stopPrice *decimal.Decimal,
	sizing types.Sizing,
	opts []OrderOption,
) (*types.Order, error) {
	req := types.OrderRequest{
		Symbol:     symbol,
		Side:       side,
		Type:       orderType,
		Quantity:   sizing.Quantity,
		Amount:     sizing.Amount,
		LimitPrice: limitPrice,
		StopPrice:  stopPrice,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return c.PlaceOrder(ctx, req)
}

// PlaceMarketBuyOrder 市价买入（按股数或按美元金额）
func (c *Client) PlaceMarketBuyOrder(ctx context.Context, symbol string, sizing types.Sizing, opts ...OrderOption) (*types.Order, error) {
	return c.placeTyped(ctx, symbol, types.SideBuy, types.OrderTypeMarket, nil, nil, sizing, opts)
}

// PlaceMarketSellOrder 市价卖出（按股数或按美元金额）
func (c *Client) PlaceMarketSellOrder(ctx context.Context, symbol string, sizing types.Sizing, opts ...OrderOption) (*types.Order, error) {
	return c.placeTyped(ctx, symbol, types.SideSell, types.OrderTypeMarket, nil, nil, sizing, opts)
}

// PlaceLimitBuyOrder 限价买入
func (c *Client) PlaceLimitBuyOrder(ctx context.Context, symbol string, limitPrice decimal.Decimal, sizing types.Sizing, opts ...OrderOption) (*types.Order, error) {
	return c.placeTyped(ctx, symbol, types.SideBuy, types.OrderTypeLimit, &limitPrice, nil, sizing, opts)
}

// PlaceLimitSellOrder 限价卖出
func (c *Client) PlaceLimitSellOrder(ctx context.Context, symbol string, limitPrice decimal.Decimal, sizing types.Sizing, opts ...OrderOption) (*types.Order, error) {
	return c.placeTyped(ctx, symbol, types.SideSell, types.OrderTypeLimit, &limitPrice, nil, sizing, opts)
}

// PlaceStopBuyOrder 止损买入（触发后按市价成交）
func (c *Client) PlaceStopBuyOrder(ctx context.Context, symbol string, stopPrice decimal.Decimal, sizing types.Sizing, opts ...OrderOption) (*types.Order, error) {
	return c.placeTyped(ctx, symbol, types.SideBuy, types.OrderTypeStop, nil, &stopPrice, sizing, opts)
}

// PlaceStopSellOrder 止损卖出（触发后按市价成交）
func (c *Client) PlaceStopSellOrder(ctx context.Context, symbol string, stopPrice decimal.Decimal, sizing types.Sizing, opts ...OrderOption) (*types.Order, error) {
	return c.placeTyped(ctx, symbol, types.SideSell, types.OrderTypeStop, nil, &stopPrice, sizing, opts)
}

// PlaceStopLimitBuyOrder 止损限价买入（触发后按限价挂单）
func (c *Client) PlaceStopLimitBuyOrder(ctx context.Context, symbol string, limitPrice, stopPrice decimal.Decimal, sizing types.Sizing, opts ...OrderOption) (*types.Order, error) {
	return c.placeTyped(ctx, symbol, types.SideBuy, types.OrderTypeStopLimit, &limitPrice, &stopPrice, sizing, opts)
}

// PlaceStopLimitSellOrder 止损限价卖出（触发后按限价挂单）
func (c *Client) PlaceStopLimitSellOrder(ctx context.Context, symbol string, limitPrice, stopPrice decimal.Decimal, sizing types.Sizing, opts ...OrderOption) (*types.Order, error) {
	return c.placeTyped(ctx, symbol, types.SideSell, types.OrderTypeStopLimit, &limitPrice, &stopPrice, sizing, opts)
}
