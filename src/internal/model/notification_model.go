package model

type ListNotificationsRequest struct {
	UserID uint64 `json:"-" validate:"required"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `json:"offset" validate:"omitempty,min=0"`
}

type MarkNotificationReadRequest struct {
	NotificationID uint64 `json:"-" validate:"required"`
	UserID         uint64 `json:"-" validate:"required"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
