package cancel_booking

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
	cancelBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

const body = `{"date":"2024-01-10","time":"09:00"}`

var (
	slotDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	slotTime = types.TimeOfDay{Hour: 9}
)

func doCancel(h *Handler, userID string, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/owners/{ownerId}/slots/cancel", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/owners/1/slots/cancel", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_PromotedNotifiesPromotedUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	useCase := NewMockCancelBookingUseCase(ctrl)
	notifier := NewMockNotifier(ctrl)
	logger := NewMockLogger(ctrl)

	promoted := int64(3)
	useCase.EXPECT().Execute(gomock.Any(), &cancelBooking.Request{OwnerID: 1, BookerID: 2, Date: slotDate, Time: slotTime}).
		Return(&cancelBooking.Response{
			Status:         domain.CancelPromoted,
			SlotID:         11,
			OwnerID:        1,
			Date:           slotDate,
			Time:           slotTime,
			PromotedUserID: &promoted,
		}, nil)
	notifier.EXPECT().Dispatch(notifications.Event{
		Kind:      notifierClient.KindPromoted,
		Recipient: 3,
		OwnerID:   1,
		Date:      slotDate,
		Time:      slotTime,
	})
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	w := doCancel(NewHandler(useCase, notifier, logger), "2", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"promoted","slotId":11,"promotedUserId":3}`, w.Body.String())
}

func TestHandle_FreedNotifiesOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	useCase := NewMockCancelBookingUseCase(ctrl)
	notifier := NewMockNotifier(ctrl)
	logger := NewMockLogger(ctrl)

	useCase.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(&cancelBooking.Response{Status: domain.CancelFreed, SlotID: 11, OwnerID: 1, Date: slotDate, Time: slotTime}, nil)
	notifier.EXPECT().Dispatch(notifications.Event{
		Kind:      notifierClient.KindCancelled,
		Recipient: 1,
		OwnerID:   1,
		Date:      slotDate,
		Time:      slotTime,
	})
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	w := doCancel(NewHandler(useCase, notifier, logger), "2", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"freed","slotId":11}`, w.Body.String())
}

func TestHandle_NotifiesSkippedWaitlistUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	useCase := NewMockCancelBookingUseCase(ctrl)
	notifier := NewMockNotifier(ctrl)
	logger := NewMockLogger(ctrl)

	promoted := int64(5)
	useCase.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(&cancelBooking.Response{
			Status:         domain.CancelPromoted,
			SlotID:         11,
			OwnerID:        1,
			Date:           slotDate,
			Time:           slotTime,
			PromotedUserID: &promoted,
			SkippedUserIDs: []int64{3, 4},
		}, nil)

	event := func(kind notifierClient.Kind, recipient int64) notifications.Event {
		return notifications.Event{Kind: kind, Recipient: recipient, OwnerID: 1, Date: slotDate, Time: slotTime}
	}
	gomock.InOrder(
		notifier.EXPECT().Dispatch(event(notifierClient.KindSkipped, 3)),
		notifier.EXPECT().Dispatch(event(notifierClient.KindSkipped, 4)),
		notifier.EXPECT().Dispatch(event(notifierClient.KindPromoted, 5)),
	)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	w := doCancel(NewHandler(useCase, notifier, logger), "2", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"promoted","slotId":11,"promotedUserId":5,"skippedUserIds":[3,4]}`, w.Body.String())
}

func TestHandle_SkippedUsersNotifiedWhenSlotFreed(t *testing.T) {
	ctrl := gomock.NewController(t)
	useCase := NewMockCancelBookingUseCase(ctrl)
	notifier := NewMockNotifier(ctrl)
	logger := NewMockLogger(ctrl)

	useCase.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(&cancelBooking.Response{
			Status:         domain.CancelFreed,
			SlotID:         11,
			OwnerID:        1,
			Date:           slotDate,
			Time:           slotTime,
			SkippedUserIDs: []int64{3},
		}, nil)
	notifier.EXPECT().Dispatch(notifications.Event{
		Kind: notifierClient.KindSkipped, Recipient: 3, OwnerID: 1, Date: slotDate, Time: slotTime,
	})
	notifier.EXPECT().Dispatch(notifications.Event{
		Kind: notifierClient.KindCancelled, Recipient: 1, OwnerID: 1, Date: slotDate, Time: slotTime,
	})
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	w := doCancel(NewHandler(useCase, notifier, logger), "2", body)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandle_WithdrawnDoesNotNotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	useCase := NewMockCancelBookingUseCase(ctrl)
	notifier := NewMockNotifier(ctrl)
	logger := NewMockLogger(ctrl)

	useCase.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(&cancelBooking.Response{Status: domain.CancelWithdrawn, SlotID: 11, OwnerID: 1}, nil)
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	w := doCancel(NewHandler(useCase, notifier, logger), "4", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"withdrawn","slotId":11}`, w.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: cancelBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "slot not found", err: cancelBooking.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "not booked by user", err: cancelBooking.ErrNotBookedByUser, wantStatus: http.StatusForbidden},
		{name: "internal", err: fmt.Errorf("%w: boom", cancelBooking.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			useCase := NewMockCancelBookingUseCase(ctrl)
			notifier := NewMockNotifier(ctrl)
			logger := NewMockLogger(ctrl)

			useCase.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
			logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()

			w := doCancel(NewHandler(useCase, notifier, logger), "2", body)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	useCase := NewMockCancelBookingUseCase(ctrl)
	logger := NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

	w := doCancel(NewHandler(useCase, nil, logger), "2", `{"date":"2024-01-10"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
