package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	dto "github.com/prometheus/client_model/go"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func findMetricFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func findMetricByLabels(mf *dto.MetricFamily, labels map[string]string) *dto.Metric {
	for _, m := range mf.GetMetric() {
		matched := 0
		for _, lp := range m.GetLabel() {
			if v, ok := labels[lp.GetName()]; ok && v == lp.GetValue() {
				matched++
			}
		}
		if matched == len(labels) {
			return m
		}
	}
	return nil
}

func TestRegistry_Middleware(t *testing.T) {
	reg := NewRegistry()
	r := gin.New()
	r.Use(reg.Middleware())
	r.GET("/api/orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/orders/1", "/api/orders/2", "/nope"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	requests := findMetricFamily(families, MetricHTTPRequestsTotal)
	require.NotNil(t, requests)

	ok := findMetricByLabels(requests, map[string]string{"route": "/api/orders/:id", "status": "200"})
	require.NotNil(t, ok)
	assert.Equal(t, 2.0, ok.GetCounter().GetValue())

	missing := findMetricByLabels(requests, map[string]string{"route": "unmatched", "status": "404"})
	require.NotNil(t, missing)
	assert.Equal(t, 1.0, missing.GetCounter().GetValue())

	duration := findMetricFamily(families, MetricHTTPRequestDuration)
	require.NotNil(t, duration)
	assert.Equal(t, dto.MetricType_HISTOGRAM, duration.GetType())
}

func TestOrderMetrics_Handle(t *testing.T) {
	reg := NewRegistry()
	handler := NewOrderMetrics(reg)
	assert.ElementsMatch(t, ordering.OrderEventTypes(), handler.EventTypes())

	o, err := ordering.NewOrder(uuid.New(), uuid.New(), "T1", "20240310-001")
	require.NoError(t, err)
	_, err = o.AddItem(ordering.LineInput{MenuItemID: uuid.New(), Name: "Ramen", UnitPrice: decimal.NewFromInt(9), Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, o.Place())
	require.NoError(t, o.Advance())
	require.NoError(t, o.Advance())
	require.NoError(t, o.Advance())

	ctx := context.Background()
	for _, e := range o.GetDomainEvents() {
		require.NoError(t, handler.Handle(ctx, e))
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	placed := findMetricFamily(families, MetricOrdersPlacedTotal)
	require.NotNil(t, placed)
	assert.Equal(t, 1.0, placed.GetMetric()[0].GetCounter().GetValue())

	transitions := findMetricFamily(families, MetricOrderTransitionsTotal)
	require.NotNil(t, transitions)
	assert.Len(t, transitions.GetMetric(), 3)
	toReady := findMetricByLabels(transitions, map[string]string{"from": "PREPARING", "to": "READY"})
	require.NotNil(t, toReady)
	assert.Equal(t, 1.0, toReady.GetCounter().GetValue())

	ready := findMetricFamily(families, MetricOrderReadyMinutes)
	require.NotNil(t, ready)
	assert.Equal(t, uint64(1), ready.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestRegistry_Handler(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, NewOrderMetrics(reg).Handle(context.Background(), &ordering.OrderReopenedEvent{}))

	w := httptest.NewRecorder()
	reg.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, MetricOrdersReopenedTotal+" 1"), body)
	assert.Contains(t, body, "go_goroutines")
}

func TestRegistry_RegisterDatabase(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reg := NewRegistry()
	reg.RegisterDatabase(db, "qrdine")

	families, err := reg.Gather()
	require.NoError(t, err)
	open := findMetricFamily(families, "go_sql_open_connections")
	require.NotNil(t, open)
	assert.NotNil(t, findMetricByLabels(open, map[string]string{"db_name": "qrdine"}))
}
