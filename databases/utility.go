package databases

import (
	"math"
	"time"
)

type mongoPaginate struct {
	limit int64
	page  int64
}

func newMongoPaginate(limit, page int) *mongoPaginate {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	l, pg := int64(limit), int64(page)
	// past this page the skip would overflow, every such page is empty anyway
	if maxPage := math.MaxInt64 / l; pg > maxPage {
		pg = maxPage
	}
	return &mongoPaginate{
		limit: l,
		page:  pg,
	}
}

func (mp *mongoPaginate) skip() int64 {
	return mp.page*mp.limit - mp.limit
}

// bson datetimes only keep milliseconds, truncate so what we return matches what we stored
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
