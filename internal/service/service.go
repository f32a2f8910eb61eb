// Package service implements the domain rules for users, categories and
// transactions. Services are constructed with an explicit *gorm.DB handle;
// there is no ambient global connection. Expected failures are returned as
// *apperr.Error values and propagate untouched through the dispatcher.
package service

// Message is the body of delete confirmations and other message-only
// responses.
type Message struct {
	Message string `json:"message"`
}

// Page is the shared pagination input. Zero values fall back to the
// defaults used by every list endpoint.
type Page struct {
	Page  int
	Limit int
}

func (p Page) normalize() (page, limit, offset int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	limit = p.Limit
	if limit < 1 {
		limit = 5
	}
	return page, limit, (page - 1) * limit
}

// totalPages is ceil(total/limit).
func totalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
