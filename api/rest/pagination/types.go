// Package pagination turns ?limit=&offset= into bounded list windows and
// describes the window back to the client.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// a window over a list ordered newest first
type Params struct {
	Limit  int
	Offset int
}

// echoed next to every paged list
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func NewMeta(p Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: p.Offset+p.Limit < total,
	}
}

// non-positive limit takes fallback, anything above ceiling is capped, negative offset is 0
func DefaultParams(limit, offset, fallback, ceiling int) Params {
	if limit <= 0 {
		limit = fallback
	}

	return Params{
		Limit:  min(limit, ceiling),
		Offset: max(offset, 0),
	}
}

// unparsable values count as absent
func FromQuery(c *gin.Context, fallback, ceiling int) Params {
	return DefaultParams(queryInt(c, "limit"), queryInt(c, "offset"), fallback, ceiling)
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
