package toggle_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	toggleSlot "github.com/m04kA/SMC-SlotBookingService/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
)

type fakeUseCase struct {
	calls int
	resp  *toggleSlot.Response
	err   error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *toggleSlot.Request) (*toggleSlot.Response, error) {
	f.calls++
	return f.resp, f.err
}

func doToggle(uc *fakeUseCase, userID string, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/owners/{ownerId}/slots/toggle", NewHandler(uc, logger.NewDiscard()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/owners/1/slots/toggle", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	booker := int64(2)
	tests := []struct {
		name       string
		userID     string
		body       string
		uc         *fakeUseCase
		wantStatus int
		wantCalls  int
		wantBody   string
	}{
		{
			name:       "owner toggles",
			userID:     "1",
			body:       `{"date":"2024-01-10","time":"09:00"}`,
			uc:         &fakeUseCase{resp: &toggleSlot.Response{SlotID: 5, Available: false, BookedBy: &booker}},
			wantStatus: http.StatusOK,
			wantCalls:  1,
			wantBody:   `{"slotId":5,"available":false,"bookedBy":2}`,
		},
		{
			name:       "not the owner",
			userID:     "2",
			body:       `{"date":"2024-01-10","time":"09:00"}`,
			uc:         &fakeUseCase{},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "slot not found",
			userID:     "1",
			body:       `{"date":"2024-01-10","time":"09:00"}`,
			uc:         &fakeUseCase{err: toggleSlot.ErrSlotNotFound},
			wantStatus: http.StatusNotFound,
			wantCalls:  1,
		},
		{
			name:       "bad time",
			userID:     "1",
			body:       `{"date":"2024-01-10","time":"9"}`,
			uc:         &fakeUseCase{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doToggle(tt.uc, tt.userID, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalls, tt.uc.calls)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
