package handlers

import (
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

var errInvalidPagination = errors.New("invalid pagination params")

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, errInvalidPagination
		}
		limit = l
	}

	return page, limit, nil
}

// orderSortFields is the whitelist for the order listing's sortBy parameter;
// anything else falls back to orderDate.
var orderSortFields = map[string]bool{
	"orderDate":     true,
	"totalAmount":   true,
	"orderStatus":   true,
	"paymentStatus": true,
	"billingName":   true,
}

func orderSort(sortBy, sortDir string) bson.D {
	if !orderSortFields[sortBy] {
		sortBy = "orderDate"
	}
	dir := 1
	if sortDir == "desc" {
		dir = -1
	}
	return bson.D{{Key: sortBy, Value: dir}}
}

// pageMeta mirrors the page envelope the order listing returns.
type pageMeta struct {
	PageNumber    int64 `json:"pageNumber"`
	PageSize      int64 `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int64 `json:"totalPages"`
	LastPage      bool  `json:"lastPage"`
}

func buildPageMeta(page, size, total int64) pageMeta {
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	return pageMeta{
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
		LastPage:      page >= totalPages,
	}
}
