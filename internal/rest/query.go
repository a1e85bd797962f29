package rest

import (
	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"
)

type pageQuery struct {
	Limit  int
	Offset int
}

// parsePage reads limit and offset from the query string. Keys that are not
// present stay nil so the manager applies its defaults.
func parsePage(c echo.Context) (limit, offset *int, err error) {
	values := c.QueryParams()

	var q pageQuery
	if err := urlstruct.Unmarshal(c.Request().Context(), values, &q); err != nil {
		return nil, nil, err
	}

	if values.Has("limit") {
		limit = &q.Limit
	}
	if values.Has("offset") {
		offset = &q.Offset
	}

	return limit, offset, nil
}
