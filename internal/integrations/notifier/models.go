package notifier

// Kind тип уведомления
type Kind string

const (
	KindPromoted  Kind = "promoted"  // пользователь получил слот из листа ожидания
	KindCancelled Kind = "cancelled" // бронь снята, слот свободен
	KindBooked    Kind = "booked"
	KindSkipped   Kind = "skipped" // пропущен в очереди: занят в это время, из очереди удалён
)

// Notification тело запроса к webhook
type Notification struct {
	Kind      Kind   `json:"kind"`
	UserID    int64  `json:"userId"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	OwnerID   int64  `json:"ownerId"`
	OwnerName string `json:"ownerName,omitempty"`
	Date      string `json:"date"` // "2024-01-10"
	Time      string `json:"time"` // "09:00"
	Message   string `json:"message"`
}
