package public

import (
	"net/http"

	"borderwatch/internal/api/presenter"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	presenter.HandleError(w, r, h.logger, err)
}
