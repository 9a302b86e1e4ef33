package handlers

import (
	"strconv"
	"strings"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/gin-gonic/gin"
)

// parseReportFilter reads the shared store/period/paging query parameters.
func parseReportFilter(c *gin.Context) domain.ReportFilter {
	filter := domain.ReportFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}

	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	if year, err := strconv.Atoi(c.Query("year")); err == nil && year > 0 {
		filter.Year = year
	}

	if month, err := strconv.Atoi(c.Query("month")); err == nil && month >= 1 && month <= 12 {
		filter.Month = month
	}

	// Store ids may arrive repeated or comma-separated.
	raw := c.QueryArray("store_ids")
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query("store_id")); single != "" {
			raw = []string{single}
		}
	}
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
				filter.StoreIDs = append(filter.StoreIDs, id)
			}
		}
	}

	return filter
}
