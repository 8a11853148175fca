package admin

import (
	"net/http"

	"borderwatch/internal/api/presenter"
)

const maxPageLimit = 100

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	presenter.HandleError(w, r, h.logger, err)
}

func pageParams(r *http.Request) (page, limit int) {
	page = presenter.ParseInt(r.URL.Query().Get("page"), 1)
	limit = presenter.ParseInt(r.URL.Query().Get("limit"), 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
