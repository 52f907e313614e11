package get_user_bookings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
)

type fakeService struct {
	calls int
	resp  *models.BookingListResponse
	err   error
}

func (f *fakeService) GetUserBookings(_ context.Context, _ int64) (*models.BookingListResponse, error) {
	f.calls++
	return f.resp, f.err
}

func doGet(svc *fakeService, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/users/{userId}/bookings", NewHandler(svc, logger.NewDiscard()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/users/2/bookings", nil)
	req.Header.Set(middleware.UserIDHeader, userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.BookingListResponse{
		UserID:   2,
		Bookings: []models.BookingResponse{{SlotID: 11, OwnerID: 1, OwnerName: "Alice", Date: "2024-01-10", Time: "09:00"}},
		Total:    1,
	}}

	w := doGet(svc, "2")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"userId": 2,
		"bookings": [{"slotId": 11, "ownerId": 1, "ownerName": "Alice", "date": "2024-01-10", "time": "09:00"}],
		"total": 1
	}`, w.Body.String())
}

func TestHandle_OtherUserForbidden(t *testing.T) {
	svc := &fakeService{}

	w := doGet(svc, "3")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestHandle_ServiceError(t *testing.T) {
	w := doGet(&fakeService{err: errors.New("boom")}, "2")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
