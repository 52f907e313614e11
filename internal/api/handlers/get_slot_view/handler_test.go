package get_slot_view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	getSlotView "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_slot_view"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

type fakeUseCase struct {
	got  *getSlotView.Request
	resp *getSlotView.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getSlotView.Request) (*getSlotView.Response, error) {
	f.got = req
	return f.resp, f.err
}

func doGet(uc *fakeUseCase, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/owners/{ownerId}/schedule", NewHandler(uc, logger.NewDiscard()).Handle).Methods(http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandle_ReturnsDay(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	booker := int64(2)
	uc := &fakeUseCase{resp: &getSlotView.Response{
		OwnerID: 1,
		Date:    date,
		Slots: []*domain.SlotView{
			{SlotID: 10, Time: types.TimeOfDay{Hour: 8}, Available: true},
			{SlotID: 11, Time: types.TimeOfDay{Hour: 8, Minute: 45}, Available: false, BookedBy: &booker, WaitlistCount: 2},
		},
	}}

	w := doGet(uc, "/owners/1/schedule?date=2024-01-10")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.OwnerID)
	assert.True(t, uc.got.Date.Equal(date))
	assert.JSONEq(t, `{
		"ownerId": 1,
		"date": "2024-01-10",
		"slots": [
			{"slotId": 10, "time": "08:00", "available": true, "bookedBy": null, "waitlistCount": 0},
			{"slotId": 11, "time": "08:45", "available": false, "bookedBy": 2, "waitlistCount": 2}
		]
	}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, doGet(&fakeUseCase{}, "/owners/1/schedule").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(&fakeUseCase{}, "/owners/x/schedule?date=2024-01-10").Code)
	assert.Equal(t, http.StatusNotFound,
		doGet(&fakeUseCase{err: getSlotView.ErrScheduleNotFound}, "/owners/1/schedule?date=2024-01-10").Code)
	assert.Equal(t, http.StatusInternalServerError,
		doGet(&fakeUseCase{err: getSlotView.ErrInternal}, "/owners/1/schedule?date=2024-01-10").Code)
}
