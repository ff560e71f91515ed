package client

// API 端点常量
const (
	// DefaultBaseURL Robinhood API 基础地址
	DefaultBaseURL = "https://api.robinhood.com"

	// OAuth
	EndpointLogin     = "/oauth2/token/"
	EndpointLogout    = "/oauth2/revoke_token/"
	EndpointChallenge = "/challenge/" // + {id}/respond/

	// Profile
	EndpointAccounts   = "/accounts/"
	EndpointPortfolios = "/portfolios/"

	// Account
	EndpointPositions  = "/positions/"
	EndpointWatchlists = "/watchlists/" // + {name}/

	// Stocks
	EndpointFundamentals = "/fundamentals/"
	EndpointInstruments  = "/instruments/"
	EndpointQuotes       = "/quotes/"
	EndpointHistoricals  = "/quotes/historicals/"
	EndpointRatings      = "/midlands/ratings/"
	EndpointTags         = "/midlands/tags/" // + instrument/{id}/ 或 tag/{name}/

	// Orders
	EndpointOrders = "/orders/" // + {id}/ 或 {id}/cancel/
)
