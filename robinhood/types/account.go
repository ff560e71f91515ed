package types

import "github.com/shopspring/decimal"

// Account 账户信息
// 注意：Robinhood 的数值字段均为字符串编码，统一用 decimal 解析
type Account struct {
	URL                        string          `json:"url"`
	AccountNumber              string          `json:"account_number"`
	Type                       string          `json:"type"`
	BuyingPower                decimal.Decimal `json:"buying_power"`
	Cash                       decimal.Decimal `json:"cash"`
	CashAvailableForWithdrawal decimal.Decimal `json:"cash_available_for_withdrawal"`
	CashHeldForOrders          decimal.Decimal `json:"cash_held_for_orders"`
	SMA                        decimal.Decimal `json:"sma"`
	Deactivated                bool            `json:"deactivated"`
	DepositHalted              bool            `json:"deposit_halted"`
	OnlyPositionClosingTrades  bool            `json:"only_position_closing_trades"`
	CreatedAt                  string          `json:"created_at"`
	UpdatedAt                  string          `json:"updated_at"`
}

// Portfolio 投资组合概况
type Portfolio struct {
	URL                      string          `json:"url"`
	AccountNumber            string          `json:"account"`
	Equity                   decimal.Decimal `json:"equity"`
	ExtendedHoursEquity      decimal.Decimal `json:"extended_hours_equity"`
	MarketValue              decimal.Decimal `json:"market_value"`
	ExtendedHoursMarketValue decimal.Decimal `json:"extended_hours_market_value"`
	LastCoreEquity           decimal.Decimal `json:"last_core_equity"`
	LastCoreMarketValue      decimal.Decimal `json:"last_core_market_value"`
	WithdrawableAmount       decimal.Decimal `json:"withdrawable_amount"`
	UnwithdrawableDeposits   decimal.Decimal `json:"unwithdrawable_deposits"`
	StartDate                string          `json:"start_date"`
}

// PortfolioHistoricals 投资组合历史净值
type PortfolioHistoricals struct {
	AdjustedOpenEquity          decimal.Decimal   `json:"adjusted_open_equity"`
	AdjustedPreviousCloseEquity decimal.Decimal   `json:"adjusted_previous_close_equity"`
	OpenEquity                  decimal.Decimal   `json:"open_equity"`
	OpenTime                    string            `json:"open_time"`
	Interval                    string            `json:"interval"`
	Span                        string            `json:"span"`
	Bounds                      string            `json:"bounds"`
	Equities                    []EquityDatapoint `json:"equity_historicals"`
}

// EquityDatapoint 单个周期的账户净值
type EquityDatapoint struct {
	BeginsAt            string          `json:"begins_at"`
	OpenEquity          decimal.Decimal `json:"open_equity"`
	CloseEquity         decimal.Decimal `json:"close_equity"`
	AdjustedOpenEquity  decimal.Decimal `json:"adjusted_open_equity"`
	AdjustedCloseEquity decimal.Decimal `json:"adjusted_close_equity"`
	OpenMarketValue     decimal.Decimal `json:"open_market_value"`
	CloseMarketValue    decimal.Decimal `json:"close_market_value"`
	NetReturn           decimal.Decimal `json:"net_return"`
	Session             string          `json:"session"`
}

// Position 持仓
type Position struct {
	URL                     string          `json:"url"`
	Account                 string          `json:"account"`
	Instrument              string          `json:"instrument"`
	Quantity                decimal.Decimal `json:"quantity"`
	AverageBuyPrice         decimal.Decimal `json:"average_buy_price"`
	PendingAverageBuyPrice  decimal.Decimal `json:"pending_average_buy_price"`
	SharesHeldForBuys       decimal.Decimal `json:"shares_held_for_buys"`
	SharesHeldForSells      decimal.Decimal `json:"shares_held_for_sells"`
	IntradayQuantity        decimal.Decimal `json:"intraday_quantity"`
	IntradayAverageBuyPrice decimal.Decimal `json:"intraday_average_buy_price"`
	CreatedAt               string          `json:"created_at"`
	UpdatedAt               string          `json:"updated_at"`
}
