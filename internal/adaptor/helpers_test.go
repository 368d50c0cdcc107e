package adaptor

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// withURLParam menyuntikkan chi URL param ke request untuk unit test handler
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
