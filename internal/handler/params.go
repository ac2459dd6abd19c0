package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/httpx"
)

// pathID extracts the {id} route parameter as a positive int64. On failure
// it writes a 400 and returns ok=false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Error(w, http.StatusBadRequest, "ValidationError", "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryInt64(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func listParams(r *http.Request) domain.ListParams {
	q := r.URL.Query()
	return domain.NewListParams(queryInt(r, "offset"), queryInt(r, "limit"), q.Get("sort"), q.Get("q"))
}

func cursorParams(r *http.Request) domain.CursorParams {
	return domain.NewCursorParams(queryInt64(r, "cursor"), queryInt(r, "limit"))
}

// listMeta is the pagination envelope returned by offset-based list
// endpoints. Sort and query echo back as null when absent.
type listMeta struct {
	Total  int64   `json:"total"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
	Sort   *string `json:"sort"`
	Query  *string `json:"q"`
}

func newListMeta(params domain.ListParams, total int64) listMeta {
	m := listMeta{Total: total, Offset: params.Offset, Limit: params.Limit}
	if params.Sort != "" {
		m.Sort = &params.Sort
	}
	if params.Query != "" {
		m.Query = &params.Query
	}
	return m
}
