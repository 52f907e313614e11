package get_analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/analytics"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/analytics/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
)

type fakeService struct {
	got  *models.GetAnalyticsRequest
	resp *models.AnalyticsResponse
	err  error
}

func (f *fakeService) GetSummary(_ context.Context, req *models.GetAnalyticsRequest) (*models.AnalyticsResponse, error) {
	f.got = req
	return f.resp, f.err
}

func doGet(svc *fakeService, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/owners/{ownerId}/analytics", NewHandler(svc, logger.NewDiscard()).Handle).Methods(http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.AnalyticsResponse{
		OwnerID:          1,
		MostFrequentSlot: &models.SlotFrequencyResponse{Time: "09:00", Total: 3},
		TopBookers:       []models.BookerTotalResponse{{BookerID: 2, Name: "Bob", Total: 3}},
	}}

	w := doGet(svc, "/owners/1/analytics?limit=5")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &models.GetAnalyticsRequest{OwnerID: 1, Limit: 5}, svc.got)
	assert.JSONEq(t, `{
		"ownerId": 1,
		"mostFrequentSlot": {"time": "09:00", "total": 3},
		"topBookers": [{"bookerId": 2, "name": "Bob", "total": 3}]
	}`, w.Body.String())
}

func TestHandle_DefaultLimit(t *testing.T) {
	svc := &fakeService{resp: &models.AnalyticsResponse{OwnerID: 1, TopBookers: []models.BookerTotalResponse{}}}

	w := doGet(svc, "/owners/1/analytics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.got.Limit)
	assert.JSONEq(t, `{"ownerId": 1, "mostFrequentSlot": null, "topBookers": []}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, doGet(&fakeService{}, "/owners/1/analytics?limit=abc").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(&fakeService{}, "/owners/1/analytics?limit=-1").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(&fakeService{err: analytics.ErrInvalidInput}, "/owners/1/analytics?limit=500").Code)
	assert.Equal(t, http.StatusInternalServerError, doGet(&fakeService{err: analytics.ErrInternal}, "/owners/1/analytics").Code)
}
