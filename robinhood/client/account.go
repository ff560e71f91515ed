package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/robinbot/gohood/robinhood/types"
)

// DefaultWatchlist 默认自选列表名
const DefaultWatchlist = "Default"

// GetPositions 获取持仓列表
// nonzero 为 true 时只返回未清零的持仓；pages <= 0 表示拉完所有分页。
func (c *Client) GetPositions(ctx context.Context, nonzero bool, pages int) ([]types.Position, error) {
	query := map[string]string{"nonzero": strconv.FormatBool(nonzero)}
	return paginate[types.Position](ctx, c, EndpointPositions, query, pages)
}

// watchlistEntry 自选列表条目
type watchlistEntry struct {
	Instrument string `json:"instrument"`
	Watchlist  string `json:"watchlist"`
	CreatedAt  string `json:"created_at"`
}

// GetWatchlist 获取自选列表中的标的（返回 instrument URL 列表）
// watchlist 为空时使用默认列表；pages <= 0 表示拉完所有分页。
func (c *Client) GetWatchlist(ctx context.Context, watchlist string, pages int) ([]string, error) {
	if watchlist == "" {
		watchlist = DefaultWatchlist
	}

	entries, err := paginate[watchlistEntry](ctx, c, EndpointWatchlists+watchlist+"/", nil, pages)
	if err != nil {
		return nil, err
	}

	instruments := make([]string, 0, len(entries))
	for _, e := range entries {
		instruments = append(instruments, e.Instrument)
	}
	return instruments, nil
}

// AddToWatchlist 把标的加入自选列表
// instrument 为 instrument URL（可由 GetInstruments 解析得到）。
func (c *Client) AddToWatchlist(ctx context.Context, instrument, watchlist string) error {
	if watchlist == "" {
		watchlist = DefaultWatchlist
	}
	return c.do(ctx, http.MethodPost, EndpointWatchlists+watchlist+"/", &requestOptions{
		body:       map[string]string{"instrument": instrument},
		wantStatus: http.StatusCreated,
	}, nil)
}

// RemoveFromWatchlist 把标的移出自选列表
// instrumentID 为 instrument 的 ID（非 URL）。
func (c *Client) RemoveFromWatchlist(ctx context.Context, instrumentID, watchlist string) error {
	if watchlist == "" {
		watchlist = DefaultWatchlist
	}
	return c.do(ctx, http.MethodDelete, EndpointWatchlists+watchlist+"/"+instrumentID+"/", &requestOptions{
		wantStatus: http.StatusNoContent,
	}, nil)
}
