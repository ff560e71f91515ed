package types

import "github.com/shopspring/decimal"

// Instrument 证券标的元数据（下单前需要把 symbol 解析为 instrument URL）
type Instrument struct {
	ID           string          `json:"id"`
	URL          string          `json:"url"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	SimpleName   string          `json:"simple_name"`
	State        string          `json:"state"`
	Tradeable    bool            `json:"tradeable"`
	Country      string          `json:"country"`
	ListDate     string          `json:"list_date"`
	MinTickSize  decimal.Decimal `json:"min_tick_size"`
	Quote        string          `json:"quote"`
	Fundamentals string          `json:"fundamentals"`
	Market       string          `json:"market"`
}

// Quote 实时报价
type Quote struct {
	Symbol                      string          `json:"symbol"`
	Instrument                  string          `json:"instrument"`
	AskPrice                    decimal.Decimal `json:"ask_price"`
	AskSize                     int64           `json:"ask_size"`
	BidPrice                    decimal.Decimal `json:"bid_price"`
	BidSize                     int64           `json:"bid_size"`
	LastTradePrice              decimal.Decimal `json:"last_trade_price"`
	LastExtendedHoursTradePrice decimal.Decimal `json:"last_extended_hours_trade_price"`
	PreviousClose               decimal.Decimal `json:"previous_close"`
	PreviousCloseDate           string          `json:"previous_close_date"`
	TradingHalted               bool            `json:"trading_halted"`
	HasTraded                   bool            `json:"has_traded"`
	UpdatedAt                   string          `json:"updated_at"`
}

// Fundamental 基本面数据
type Fundamental struct {
	Instrument    string          `json:"instrument"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Volume        decimal.Decimal `json:"volume"`
	AverageVolume decimal.Decimal `json:"average_volume"`
	High52Weeks   decimal.Decimal `json:"high_52_weeks"`
	Low52Weeks    decimal.Decimal `json:"low_52_weeks"`
	MarketCap     decimal.Decimal `json:"market_cap"`
	PERatio       decimal.Decimal `json:"pe_ratio"`
	PBRatio       decimal.Decimal `json:"pb_ratio"`
	DividendYield decimal.Decimal `json:"dividend_yield"`
	Sector        string          `json:"sector"`
	Industry      string          `json:"industry"`
	CEO           string          `json:"ceo"`
	Description   string          `json:"description"`
	NumEmployees  int64           `json:"num_employees"`
	YearFounded   int             `json:"year_founded"`
}

// Historicals 单个标的的历史报价序列
type Historicals struct {
	Symbol             string             `json:"symbol"`
	Instrument         string             `json:"instrument"`
	Interval           string             `json:"interval"`
	Span               string             `json:"span"`
	Bounds             string             `json:"bounds"`
	OpenPrice          decimal.Decimal    `json:"open_price"`
	OpenTime           string             `json:"open_time"`
	PreviousClosePrice decimal.Decimal    `json:"previous_close_price"`
	Candles            []HistoricalCandle `json:"historicals"`
}

// HistoricalCandle 单个周期的 OHLC 数据
type HistoricalCandle struct {
	BeginsAt     string          `json:"begins_at"`
	OpenPrice    decimal.Decimal `json:"open_price"`
	ClosePrice   decimal.Decimal `json:"close_price"`
	HighPrice    decimal.Decimal `json:"high_price"`
	LowPrice     decimal.Decimal `json:"low_price"`
	Volume       int64           `json:"volume"`
	Session      string          `json:"session"`
	Interpolated bool            `json:"interpolated"`
}

// Rating 分析师评级汇总
type Rating struct {
	InstrumentID string `json:"instrument_id"`
	Summary      struct {
		NumBuyRatings  int `json:"num_buy_ratings"`
		NumHoldRatings int `json:"num_hold_ratings"`
		NumSellRatings int `json:"num_sell_ratings"`
	} `json:"summary"`
	RatingsPublishedAt string `json:"ratings_published_at"`
}
