package types

// Side 订单方向
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType 订单类型
type OrderType string

const (
	OrderTypeMarket    OrderType = "market"     // 市价单
	OrderTypeLimit     OrderType = "limit"      // 限价单
	OrderTypeStop      OrderType = "stop"       // 止损单（触发后按市价成交）
	OrderTypeStopLimit OrderType = "stop_limit" // 止损限价单（触发后按限价挂单）
)

// TimeInForce 订单有效期
type TimeInForce string

const (
	TimeInForceGFD TimeInForce = "gfd" // Good For Day - 当日有效
	TimeInForceGTC TimeInForce = "gtc" // Good Till Cancel - 一直有效直到取消
)

// ChallengeType 登录验证码的下发渠道
type ChallengeType string

const (
	ChallengeTypeSMS   ChallengeType = "sms"
	ChallengeTypeEmail ChallengeType = "email"
)

// HistoricalInterval 历史数据的采样粒度
type HistoricalInterval string

const (
	IntervalFiveMin HistoricalInterval = "5minute"
	IntervalTenMin  HistoricalInterval = "10minute"
	IntervalHour    HistoricalInterval = "hour"
	IntervalDay     HistoricalInterval = "day"
	IntervalWeek    HistoricalInterval = "week"
)

// HistoricalSpan 历史数据的时间窗口
type HistoricalSpan string

const (
	SpanDay        HistoricalSpan = "day"
	SpanWeek       HistoricalSpan = "week"
	SpanMonth      HistoricalSpan = "month"
	SpanThreeMonth HistoricalSpan = "3month"
	SpanYear       HistoricalSpan = "year"
	SpanFiveYear   HistoricalSpan = "5year"
)
