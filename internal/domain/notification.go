package domain

type NotificationType string

const (
	NotificationTypeOrderConfirmed NotificationType = "ORDER_CONFIRMED"
	NotificationTypeOrderStatus    NotificationType = "ORDER_STATUS"
	NotificationTypeReturnReminder NotificationType = "RETURN_REMINDER"
	NotificationTypeLateNotice     NotificationType = "LATE_NOTICE"
	NotificationTypeWelcome        NotificationType = "WELCOME"
)

type Notification struct {
	ID           int32            `json:"id"`
	UserID       int32            `json:"user_id"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	IsRead       bool             `json:"is_read"`
	OrderID      *int32           `json:"order_id,omitempty"`
	ScheduledFor *string          `json:"scheduled_for,omitempty"`
	CreatedOn    string           `json:"created_on"`
}
