package models

import "time"

// TimelineSession is the caller-owned state of one booking session's timeline.
// The engine never retains it; the workflow stores it between requests.
type TimelineSession struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	PackageID  string             `json:"packageId"`
	EventDate  Date               `json:"eventDate"`
	Activities []TimelineActivity `json:"activities"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// TimelineView is a session plus its current conflict advisories and any
// data-quality warnings from initialization.
type TimelineView struct {
	Session   *TimelineSession `json:"session"`
	Conflicts []Conflict       `json:"conflicts"`
	Warnings  []Warning        `json:"warnings,omitempty"`
}
