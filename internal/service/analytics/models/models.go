package models

import "github.com/m04kA/SMC-SlotBookingService/internal/domain"

// GetAnalyticsRequest запрос аналитики владельца
type GetAnalyticsRequest struct {
	OwnerID int64
	Limit   int // <= 0 означает значение по умолчанию
}

// AnalyticsResponse сводка по владельцу
type AnalyticsResponse struct {
	OwnerID          int64                  `json:"ownerId"`
	MostFrequentSlot *SlotFrequencyResponse `json:"mostFrequentSlot"` // null, если бронирований не было
	TopBookers       []BookerTotalResponse  `json:"topBookers"`
}

// SlotFrequencyResponse самое популярное время
type SlotFrequencyResponse struct {
	Time  string `json:"time"` // "09:00"
	Total int    `json:"total"`
}

// BookerTotalResponse пользователь и число его бронирований у владельца
type BookerTotalResponse struct {
	BookerID int64  `json:"bookerId"`
	Name     string `json:"name,omitempty"`
	Total    int    `json:"total"`
}

// FromDomainSlotFrequency конвертирует domain модель в response
func FromDomainSlotFrequency(f *domain.SlotFrequency) *SlotFrequencyResponse {
	if f == nil {
		return nil
	}
	return &SlotFrequencyResponse{Time: f.Time.String(), Total: f.Total}
}

// FromDomainBookerTotals конвертирует список domain моделей в response
func FromDomainBookerTotals(totals []*domain.BookerTotal) []BookerTotalResponse {
	result := make([]BookerTotalResponse, 0, len(totals))
	for _, t := range totals {
		result = append(result, BookerTotalResponse{BookerID: t.BookerID, Total: t.Total})
	}
	return result
}
