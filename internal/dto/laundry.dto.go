package dto

import "github.com/BruksfildServices01/uniease-api/internal/models"

type NotificationDTO struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// LaundryStatusDTO reports the updated request and, separately, what happened to
// the completion notification.
type LaundryStatusDTO struct {
	Laundry      *models.LaundryRequest `json:"laundry"`
	Notification NotificationDTO        `json:"notification"`
}
