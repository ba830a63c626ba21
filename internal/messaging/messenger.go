// Package messaging holds the external notification collaborators: the SMS
// gateway used for customer return reminders and the SendGrid sender used
// for staff alert mails.
package messaging

import (
	"context"
	"time"

	"rentalops-backend/internal/logger"
)

// ReminderMessage is the payload handed to the messaging collaborator for a
// return reminder.
type ReminderMessage struct {
	BookingRef     string    `json:"booking_id"`
	ReturnTime     time.Time `json:"return_time"`
	VehicleModel   string    `json:"vehicle_model"`
	RegistrationNo string    `json:"registration_number"`
	ReturnLocation string    `json:"return_location"`
}

// Messenger dispatches one reminder to a phone number.
type Messenger interface {
	SendReturnReminder(ctx context.Context, phone string, msg ReminderMessage) error
}

// ConsoleMessenger logs instead of sending; the dev/test provider.
type ConsoleMessenger struct{}

func NewConsoleMessenger() *ConsoleMessenger {
	return &ConsoleMessenger{}
}

func (m *ConsoleMessenger) SendReturnReminder(_ context.Context, phone string, msg ReminderMessage) error {
	logger.Info("return reminder (console)",
		"phone", phone,
		"booking_ref", msg.BookingRef,
		"return_time", msg.ReturnTime,
		"vehicle", msg.VehicleModel,
		"registration", msg.RegistrationNo)
	return nil
}
