package handler

import (
	"github.com/labstack/echo/v4"
)

// envelope is the canonical success envelope: {"success":true,"data":...}.
// Failures are rendered by the central error handler.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// listEnvelope extends the envelope with pagination fields for list endpoints.
type listEnvelope struct {
	Success bool  `json:"success"`
	Count   int   `json:"count"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	Data    any   `json:"data"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: true, Message: message})
}

func respondList(c echo.Context, status int, items any, count int, total int64, page, pages int) error {
	return c.JSON(status, listEnvelope{
		Success: true,
		Count:   count,
		Total:   total,
		Page:    page,
		Pages:   pages,
		Data:    items,
	})
}
