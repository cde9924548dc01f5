package dto

import (
	"net/http"

	"stock-radar/internal/model"
)

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

// GetStocksRequest carries the query parameters of the paginated list view.
type GetStocksRequest struct {
	Sort  string `query:"sort" validate:"omitempty,oneof=score ticker name price target target_low target_high price_to_book mom_1d mom_1m mom_3m mom_1y target_upside"`
	Order string `query:"order" validate:"omitempty,oneof=asc desc"`
	Page  int    `query:"page" validate:"omitempty,min=1"`
}

// StockRow is one row of the ranked, paginated view.
type StockRow struct {
	model.StockData
	TargetUpsidePct *float64 `json:"target_upside_pct"`
	Score           float64  `json:"score"`
}

// StockPage is one page of the view plus pagination metadata.
type StockPage struct {
	Rows       []StockRow `json:"rows"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalRows  int        `json:"total_rows"`
	TotalPages int        `json:"total_pages"`
}

// StockDetail is the live detail lookup: fundamentals straight from the
// provider plus one year of daily closes, bypassing the store.
type StockDetail struct {
	Fundamentals *Fundamentals `json:"fundamentals"`
	History      []ClosePoint  `json:"history"`
}
