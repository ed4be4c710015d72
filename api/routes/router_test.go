package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brewopshq/brewhaus-backend/pkg/config"
	"github.com/brewopshq/brewhaus-backend/pkg/logger"
	"github.com/brewopshq/brewhaus-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

func newTestRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	reg := prometheus.NewRegistry()
	return NewRouter(cfg, logg, stubPinger{}, nil, metrics.NewHTTPMetrics(reg), reg, Services{})
}

func TestRouterRegistersExpectedRoutes(t *testing.T) {
	router := newTestRouter()

	// Nil services answer 500, which still proves the route is mounted;
	// only an unknown path may 404 and only a wrong verb may 405.
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/ping"},
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/metrics"},
		{http.MethodGet, "/ingredient/all"},
		{http.MethodPost, "/ingredient/add"},
		{http.MethodPut, "/ingredient/update/123"},
		{http.MethodPost, "/recipe/add"},
		{http.MethodPut, "/recipe/update/123"},
		{http.MethodGet, "/recipe/view/123"},
		{http.MethodGet, "/recipe/view_all"},
		{http.MethodPost, "/grn/add"},
		{http.MethodGet, "/grn/view_all"},
		{http.MethodGet, "/grn/view/123"},
		{http.MethodPut, "/grn/update/123"},
		{http.MethodGet, "/product/all"},
		{http.MethodPost, "/product/add"},
		{http.MethodPut, "/product/update/123"},
		{http.MethodDelete, "/product/delete/123"},
		{http.MethodPost, "/batch/add"},
		{http.MethodGet, "/batch/all"},
		{http.MethodPut, "/batch/edit/123"},
		{http.MethodDelete, "/batch/delete/123"},
		{http.MethodPost, "/order/add"},
		{http.MethodGet, "/order/all"},
		{http.MethodGet, "/user/all"},
		{http.MethodPost, "/user/add"},
		{http.MethodPut, "/user/update/123"},
		{http.MethodDelete, "/user/delete/123"},
		{http.MethodGet, "/location/list"},
		{http.MethodGet, "/location/users/all"},
		{http.MethodGet, "/location/123"},
		{http.MethodPost, "/location/add"},
		{http.MethodPut, "/location/update/123"},
		{http.MethodDelete, "/location/delete/123"},
		{http.MethodPut, "/location/assign_user/1/2"},
		{http.MethodDelete, "/location/remove_user/1/2"},
		{http.MethodGet, "/dashboard"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code == http.StatusNotFound || resp.Code == http.StatusMethodNotAllowed {
			t.Errorf("%s %s not routed, status %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestRouterHealthAndPing(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/ping", "/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Errorf("%s returned %d", path, resp.Code)
		}
	}
}
