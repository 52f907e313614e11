package claim_slot

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	notifierClient "github.com/m04kA/SMC-SlotBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/notifications"
	claimSlot "github.com/m04kA/SMC-SlotBookingService/internal/usecase/claim_slot"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/owners/{ownerId}/slots/claim", h.Handle).Methods(http.MethodPost)
	return r
}

func doClaim(router http.Handler, ownerID string, userID string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/owners/"+ownerID+"/slots/claim", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandle_Booked(t *testing.T) {
	ctrl := gomock.NewController(t)
	useCase := NewMockClaimSlotUseCase(ctrl)
	logger := NewMockLogger(ctrl)

	expected := &claimSlot.Request{
		OwnerID:  1,
		BookerID: 2,
		Date:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Time:     types.TimeOfDay{Hour: 9},
	}
	useCase.EXPECT().Execute(gomock.Any(), expected).
		Return(&claimSlot.Response{Status: domain.ClaimBooked, SlotID: 11}, nil)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	notifier := NewMockNotifier(ctrl)
	notifier.EXPECT().Dispatch(notifications.Event{
		Kind:      notifierClient.KindBooked,
		Recipient: 1,
		OwnerID:   1,
		Date:      expected.Date,
		Time:      expected.Time,
	})

	w := doClaim(newRouter(NewHandler(useCase, notifier, logger)), "1", "2", `{"date":"2024-01-10","time":"09:00"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status":"booked","slotId":11}`, w.Body.String())
}

func TestHandle_Queued(t *testing.T) {
	ctrl := gomock.NewController(t)
	useCase := NewMockClaimSlotUseCase(ctrl)
	logger := NewMockLogger(ctrl)

	useCase.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(&claimSlot.Response{Status: domain.ClaimQueued, SlotID: 11, Priority: 2}, nil)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	// в очередь - без уведомления
	notifier := NewMockNotifier(ctrl)

	w := doClaim(newRouter(NewHandler(useCase, notifier, logger)), "1", "3", `{"date":"2024-01-10","time":"09:00"}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"status":"queued","slotId":11,"priority":2}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: claimSlot.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "slot not found", err: claimSlot.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "slot blocked", err: claimSlot.ErrSlotUnavailable, wantStatus: http.StatusConflict},
		{name: "booker unavailable", err: claimSlot.ErrBookerUnavailable, wantStatus: http.StatusConflict},
		{name: "already queued", err: claimSlot.ErrAlreadyQueued, wantStatus: http.StatusConflict},
		{name: "internal", err: fmt.Errorf("%w: boom", claimSlot.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			useCase := NewMockClaimSlotUseCase(ctrl)
			logger := NewMockLogger(ctrl)

			useCase.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
			logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()

			w := doClaim(newRouter(NewHandler(useCase, nil, logger)), "1", "2", `{"date":"2024-01-10","time":"09:00"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandle_BadRequestSkipsUseCase(t *testing.T) {
	tests := []struct {
		name       string
		ownerID    string
		userID     string
		body       string
		wantStatus int
	}{
		{name: "no user header", ownerID: "1", userID: "", body: `{"date":"2024-01-10","time":"09:00"}`, wantStatus: http.StatusUnauthorized},
		{name: "bad owner id", ownerID: "abc", userID: "2", body: `{"date":"2024-01-10","time":"09:00"}`, wantStatus: http.StatusBadRequest},
		{name: "bad body", ownerID: "1", userID: "2", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "bad date", ownerID: "1", userID: "2", body: `{"date":"10.01.2024","time":"09:00"}`, wantStatus: http.StatusBadRequest},
		{name: "bad time", ownerID: "1", userID: "2", body: `{"date":"2024-01-10","time":"25:00"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			useCase := NewMockClaimSlotUseCase(ctrl)
			logger := NewMockLogger(ctrl)
			logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

			w := doClaim(newRouter(NewHandler(useCase, nil, logger)), tt.ownerID, tt.userID, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
