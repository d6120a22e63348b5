package event

// UserRegisteredDestination is the subject for completed registrations.
const UserRegisteredDestination string = "user_registered"

// UserRegisteredDestinationConsumerNotification is the queue group for the
// notification consumer.
const UserRegisteredDestinationConsumerNotification string = "user_registered_notification"

// UserRegisteredMessage is published after a registration challenge is
// validated and the account is committed.
type UserRegisteredMessage struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
