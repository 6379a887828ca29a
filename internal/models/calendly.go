// Package models defines the data structures for the Connectly Calendly bridge.
package models

// CalendlyEventType represents a Calendly webhook event type.
type CalendlyEventType string

const (
	EventTypeInviteeCreated        CalendlyEventType = "invitee.created"
	EventTypeInviteeCanceled       CalendlyEventType = "invitee.canceled"
	EventTypeInviteeRescheduled    CalendlyEventType = "invitee.rescheduled"
	EventTypeInviteePaymentCreated CalendlyEventType = "invitee_payment.created"
	EventTypeInviteeNoShowCreated  CalendlyEventType = "invitee_no_show.created"
	EventTypeInviteeNoShowDeleted  CalendlyEventType = "invitee_no_show.deleted"
)

// ValidCalendlyEventTypes returns all recognized event type values.
func ValidCalendlyEventTypes() []CalendlyEventType {
	return []CalendlyEventType{
		EventTypeInviteeCreated,
		EventTypeInviteeCanceled,
		EventTypeInviteeRescheduled,
		EventTypeInviteePaymentCreated,
		EventTypeInviteeNoShowCreated,
		EventTypeInviteeNoShowDeleted,
	}
}

// IsValid checks if the event type is a recognized Calendly event type.
func (e CalendlyEventType) IsValid() bool {
	for _, valid := range ValidCalendlyEventTypes() {
		if e == valid {
			return true
		}
	}
	return false
}

// CalendlyWebhookEvent is the wrapped webhook format: {event, payload}.
type CalendlyWebhookEvent struct {
	CreatedAt string                  `json:"created_at"`
	Event     string                  `json:"event"`
	Payload   *CalendlyWebhookPayload `json:"payload"`
}

// CalendlyWebhookPayload is the invitee payload sent by Calendly. It is the
// root object for the bare (unwrapped) webhook format.
type CalendlyWebhookPayload struct {
	CancelURL             string                  `json:"cancel_url"`
	CreatedAt             string                  `json:"created_at"`
	Email                 string                  `json:"email"`
	Event                 string                  `json:"event"`
	FirstName             string                  `json:"first_name,omitempty"`
	LastName              string                  `json:"last_name,omitempty"`
	Name                  string                  `json:"name"`
	NewInvitee            *string                 `json:"new_invitee,omitempty"`
	OldInvitee            *string                 `json:"old_invitee,omitempty"`
	QuestionsAndAnswers   []QuestionAnswer        `json:"questions_and_answers,omitempty"`
	RescheduleURL         string                  `json:"reschedule_url"`
	Rescheduled           bool                    `json:"rescheduled"`
	Status                string                  `json:"status"`
	TextReminderNumber    *string                 `json:"text_reminder_number,omitempty"`
	Timezone              string                  `json:"timezone"`
	UpdatedAt             string                  `json:"updated_at"`
	URI                   string                  `json:"uri"`
	Canceled              bool                    `json:"canceled"`
	RoutingFormSubmission *string                 `json:"routing_form_submission,omitempty"`
	Cancellation          *CalendlyCancellation   `json:"cancellation,omitempty"`
	SchedulingMethod      *string                 `json:"scheduling_method,omitempty"`
	InviteeScheduledBy    *string                 `json:"invitee_scheduled_by,omitempty"`
	ScheduledEvent        *CalendlyScheduledEvent `json:"scheduled_event"`
}

// CalendlyScheduledEvent is the booked event nested inside an invitee payload.
type CalendlyScheduledEvent struct {
	URI              string                    `json:"uri"`
	Name             string                    `json:"name"`
	Status           string                    `json:"status"`
	StartTime        string                    `json:"start_time"`
	EndTime          string                    `json:"end_time"`
	EventType        string                    `json:"event_type"`
	Location         *CalendlyLocation         `json:"location,omitempty"`
	InviteesCounter  *CalendlyInviteesCounter  `json:"invitees_counter,omitempty"`
	CreatedAt        string                    `json:"created_at"`
	UpdatedAt        string                    `json:"updated_at"`
	EventMemberships []CalendlyEventMembership `json:"event_memberships,omitempty"`
	EventGuests      []CalendlyEventGuest      `json:"event_guests,omitempty"`
}

// CalendlyLocation describes where the event takes place.
type CalendlyLocation struct {
	Type     string         `json:"type"`
	Location string         `json:"location,omitempty"`
	Status   string         `json:"status,omitempty"`
	JoinURL  string         `json:"join_url,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// CalendlyInviteesCounter tracks invitee counts on an event.
type CalendlyInviteesCounter struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Limit  int `json:"limit"`
}

// CalendlyEventMembership identifies a host of the event.
type CalendlyEventMembership struct {
	User      string `json:"user"`
	UserEmail string `json:"user_email,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

// CalendlyEventGuest is an additional guest on the event.
type CalendlyEventGuest struct {
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// QuestionAnswer is a single custom question response from the invitee.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// CalendlyCancellation holds cancellation details on a canceled invitee.
type CalendlyCancellation struct {
	CanceledBy   string `json:"canceled_by"`
	Reason       string `json:"reason,omitempty"`
	CancelerType string `json:"canceler_type"`
	CreatedAt    string `json:"created_at"`
}

// CalendlyInfo holds a mentor's stored Calendly credentials.
type CalendlyInfo struct {
	MentorID     string `json:"mentor_id" db:"mentor_id"`
	AccessToken  string `json:"-" db:"access_token"`
	EventTypeURI string `json:"event_type_uri" db:"event_type_uri"`
}

// AvailableTimeSlot is a single bookable timeslot returned to clients.
type AvailableTimeSlot struct {
	Status            string  `json:"status"`
	InviteesRemaining *int    `json:"invitees_remaining"`
	StartTime         string  `json:"start_time"`
	SchedulingURL     *string `json:"scheduling_url"`
}

// CalendlyInviteeRequest is the body for creating a booking via the Calendly API.
type CalendlyInviteeRequest struct {
	EventType string                  `json:"event_type"`
	StartTime string                  `json:"start_time"`
	Invitee   CalendlyInviteeDetails  `json:"invitee"`
	Location  CalendlyInviteeLocation `json:"location"`
}

// CalendlyInviteeDetails identifies the person being booked.
type CalendlyInviteeDetails struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Timezone  string `json:"timezone"`
}

// CalendlyInviteeLocation requests a conferencing location for the booking.
type CalendlyInviteeLocation struct {
	Kind      string `json:"kind"`
	Connected bool   `json:"connected"`
}

// CalendlyInviteeResponse is the Calendly API response for a created invitee.
type CalendlyInviteeResponse struct {
	Resource map[string]any `json:"resource"`
}
