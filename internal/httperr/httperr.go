package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err using its business kind. Anything else is logged in full and
// surfaced as a generic internal error.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusFor(be.Kind), be.Code, messages[be.Code])
		return
	}

	logrus.WithError(err).
		WithField("path", c.FullPath()).
		WithField("method", c.Request.Method).
		Error("request failed")
	Internal(c, "internal_error", "Something went wrong. Please try again.")
}

var messages = map[string]string{
	"invalid_request":              "Invalid request payload.",
	"invalid_date":                 "Date must be formatted as YYYY-MM-DD.",
	"invalid_time":                 "Time must be formatted as HH:MM.",
	"invalid_status":               "Invalid status.",
	"invalid_email":                "Invalid email.",
	"invalid_email_domain":         "The email domain does not appear to be valid.",
	"invalid_quantity":             "Quantity must be at least 1.",
	"invalid_laundry_type":         "Laundry type must be washing, dry-clean or ironing.",
	"invalid_items":                "At least one item with a name and quantity is required.",
	"invalid_credentials":          "Invalid credentials.",
	"invalid_token":                "Please authenticate.",
	"user_already_exists":          "User already exists.",
	"user_not_found":               "User not found.",
	"slot_unavailable":             "Slot not available.",
	"booking_not_found":            "Booking not found.",
	"booking_not_owner":            "You can only cancel your own bookings.",
	"booking_not_cancellable":      "Booking can no longer be cancelled.",
	"booking_state_changed":        "Booking was modified concurrently. Please retry.",
	"outlet_not_found":             "Outlet not found.",
	"outlet_not_authorized":        "Not authorized for this outlet.",
	"menu_item_not_found":          "Menu item not found.",
	"menu_item_wrong_outlet":       "Menu item does not belong to this outlet.",
	"cart_empty":                   "Cart is empty.",
	"cart_busy":                    "Cart was modified concurrently. Please retry.",
	"order_not_found":              "Order not found.",
	"order_not_cart":               "Order has already been placed.",
	"order_not_ready_or_collected": "Order not ready or already collected.",
	"laundry_request_not_found":    "Laundry request not found.",
	"admin_required":               "Admin access required.",
}
