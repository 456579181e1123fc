package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	filters Filters
	result  Result
	err     error
}

func (s *stubLister) Timeline(_ context.Context, filters Filters) (Result, error) {
	s.filters = filters
	return s.result, s.err
}

func serveAudit(h *Handler, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/audit", h.MountRoutes)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHandlerListsEntries(t *testing.T) {
	lister := &stubLister{result: Result{
		Rows:   []Entry{{ID: 3, Actor: "admin", Action: "login", Entity: "session"}},
		Paging: Paging{Page: 2, PageSize: 10, PrevPage: 1},
	}}

	rr := serveAudit(NewHandler(nil, lister), "/audit?page=2&limit=10&actor=admin&action=login")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, Filters{Actor: "admin", Action: "login", Page: 2, PageSize: 10}, lister.filters)

	var body Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Rows, 1)
	assert.Equal(t, int64(3), body.Rows[0].ID)
	assert.Equal(t, 1, body.Paging.PrevPage)
}

func TestHandlerRejectsBadPaging(t *testing.T) {
	for _, target := range []string{"/audit?page=0", "/audit?page=x", "/audit?limit=-5"} {
		lister := &stubLister{}
		rr := serveAudit(NewHandler(nil, lister), target)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
		assert.Equal(t, Filters{}, lister.filters, target)
	}
}

func TestHandlerServiceFailure(t *testing.T) {
	rr := serveAudit(NewHandler(nil, &stubLister{err: errors.New("db down")}), "/audit")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "db down")
}
