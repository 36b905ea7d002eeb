package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Query holds normalized pagination parameters. The zero value is not
// usable; build one with FromContext or set both fields.
type Query struct {
	Page int
	Size int
}

// Offset is the row offset for the current page.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// FromContext reads ?page= and ?size= from the request. Anything absent,
// unparsable or out of range falls back to page 1 and the size bounds.
func FromContext(c *gin.Context) Query {
	q := Query{
		Page: atoiOr(c.Query("page"), 1),
		Size: atoiOr(c.Query("size"), DefaultSize),
	}
	return q.normalized()
}

func (q Query) normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = DefaultSize
	}
	if q.Size > MaxSize {
		q.Size = MaxSize
	}
	return q
}

// Paginate counts the query, fetches the requested page into dest and
// returns the page metadata. The count runs against the query before
// limit/offset are applied, so dest and Total always describe the same
// filter set.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := db.Offset(q.Offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}, nil
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
