package model

import "time"

// Proposal domain object defining a talk proposal. It belongs to exactly one
// event and aggregates its votes into Rate.
type Proposal struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `json:"title"`
	Slug        string    `gorm:"index:idx_proposal_event_slug,unique" json:"slug"`
	Description string    `json:"description"`
	EventID     uint      `gorm:"index:idx_proposal_event_slug,unique" json:"eventId"`
	Event       *Event    `json:"-"`
	UserID      uint      `json:"userId"`
	User        *User     `json:"-"`
	IsPublished bool      `json:"isPublished"`
	Rate        int       `json:"rate"`
	Votes       []Vote    `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// VotesCount is derived on read, it is not a column.
	VotesCount int64 `gorm:"-" json:"votesCount"`
}
