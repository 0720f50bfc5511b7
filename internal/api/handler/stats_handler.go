package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/core/ports"
)

// StatsHandler serves the admin dashboard aggregates.
type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

type statsBooks struct {
	Total     int64   `json:"total"`
	Rated     int64   `json:"rated"`
	AvgRating float64 `json:"avgRating"`
	Recent    any     `json:"recent"`
}

type statsPosts struct {
	Total      int64 `json:"total"`
	Drafts     int64 `json:"drafts"`
	TotalLikes int64 `json:"totalLikes"`
	Recent     any   `json:"recent"`
}

type statsUsers struct {
	Total int64 `json:"total"`
}

type statsResponse struct {
	Books statsBooks `json:"books"`
	Posts statsPosts `json:"posts"`
	Users statsUsers `json:"users"`
}

// Dashboard returns shelf, blog and user totals.
//
// @Summary      Dashboard statistics
// @Tags         stats
// @Produce      json
// @Router       /api/stats [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	stats, err := h.statsService.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	resp := statsResponse{
		Books: statsBooks{
			Total:     stats.Books.Total,
			Rated:     stats.Books.Rated,
			AvgRating: stats.Books.AvgRating,
		},
		Posts: statsPosts{
			Total:      stats.Posts.Published,
			Drafts:     stats.Posts.Drafts,
			TotalLikes: stats.Posts.TotalLikes,
		},
		Users: statsUsers{Total: stats.Users},
	}
	if stats.Books.Recent != nil {
		resp.Books.Recent = stats.Books.Recent
	}
	if stats.Posts.Recent != nil {
		resp.Posts.Recent = stats.Posts.Recent
	}

	return respond(c, http.StatusOK, resp)
}
