package get_waitlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

type fakeService struct {
	got  *models.GetWaitlistRequest
	resp *models.WaitlistResponse
	err  error
}

func (f *fakeService) GetWaitlist(_ context.Context, req *models.GetWaitlistRequest) (*models.WaitlistResponse, error) {
	f.got = req
	return f.resp, f.err
}

func doGet(svc *fakeService, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/owners/{ownerId}/slots/waitlist", NewHandler(svc, logger.NewDiscard()).Handle).Methods(http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.WaitlistResponse{SlotID: 11, OwnerID: 1, Entries: []models.WaitlistEntryResponse{}}}

	w := doGet(svc, "/owners/1/slots/waitlist?date=2024-01-10&time=09:00")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(1), svc.got.OwnerID)
	assert.True(t, svc.got.Date.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, types.TimeOfDay{Hour: 9}, svc.got.Time)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, doGet(&fakeService{}, "/owners/1/slots/waitlist?date=2024-01-10").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(&fakeService{}, "/owners/1/slots/waitlist?time=09:00").Code)
	assert.Equal(t, http.StatusNotFound,
		doGet(&fakeService{err: bookings.ErrSlotNotFound}, "/owners/1/slots/waitlist?date=2024-01-10&time=09:00").Code)
}
