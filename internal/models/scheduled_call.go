// Package models defines the data structures for the Connectly Calendly bridge.
package models

import (
	"time"
)

// CallStatus represents the lifecycle status of a scheduled call.
type CallStatus string

const (
	CallStatusActive      CallStatus = "active"
	CallStatusCanceled    CallStatus = "canceled"
	CallStatusRescheduled CallStatus = "rescheduled"
)

// ValidCallStatuses returns all valid call status values.
func ValidCallStatuses() []CallStatus {
	return []CallStatus{
		CallStatusActive,
		CallStatusCanceled,
		CallStatusRescheduled,
	}
}

// IsValid checks if the call status is valid.
func (s CallStatus) IsValid() bool {
	for _, valid := range ValidCallStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// ScheduledCall represents a booked call stored for a user. One record exists
// per (user, Calendly event URI); the same data is duplicated into the
// mentor's records when the mentor is a known user.
type ScheduledCall struct {
	ID                 int64      `json:"id" db:"id"`
	UserID             string     `json:"user_id" db:"user_id"`
	CalendlyEventURI   string     `json:"calendly_event_uri" db:"calendly_event_uri"`
	Status             CallStatus `json:"status" db:"status"`
	EventType          string     `json:"event_type" db:"event_type"`
	InviteeEmail       string     `json:"invitee_email" db:"invitee_email"`
	InviteeName        string     `json:"invitee_name" db:"invitee_name"`
	MentorURI          string     `json:"mentor_uri" db:"mentor_uri"`
	MentorName         string     `json:"mentor_name" db:"mentor_name"`
	StartTime          string     `json:"start_time" db:"start_time"`
	EndTime            string     `json:"end_time" db:"end_time"`
	Timezone           string     `json:"timezone" db:"timezone"`
	JoinURL            string     `json:"join_url,omitempty" db:"join_url"`
	RescheduleURL      string     `json:"reschedule_url" db:"reschedule_url"`
	CancelURL          string     `json:"cancel_url" db:"cancel_url"`
	Rescheduled        bool       `json:"rescheduled" db:"rescheduled"`
	CanceledAt         *time.Time `json:"canceled_at,omitempty" db:"canceled_at"`
	CanceledBy         string     `json:"canceled_by,omitempty" db:"canceled_by"`
	CancellationReason string     `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// ScheduledCallPatch contains the fields that may be updated on an existing
// scheduled call. Nil fields are left untouched.
type ScheduledCallPatch struct {
	Status             *CallStatus
	CanceledAt         *time.Time
	CanceledBy         *string
	CancellationReason *string
}
