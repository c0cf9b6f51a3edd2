package model

import "time"

// Event domain object defining a conference-style event. Proposals are
// submitted against it until the due date passes.
type Event struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	Title             string     `json:"title"`
	Slug              string     `gorm:"uniqueIndex" json:"slug"`
	Description       string     `json:"description"`
	UserID            uint       `json:"userId"`
	User              *User      `json:"-"`
	DueDate           time.Time  `json:"dueDate"`
	IsPublished       bool       `json:"isPublished"`
	AllowPublicVoting bool       `json:"allowPublicVoting"`
	Proposals         []Proposal `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// SubmissionOpen reports whether proposals may still be created against the
// event at the given instant.
func (e *Event) SubmissionOpen(now time.Time) bool {
	return !now.After(e.DueDate)
}
