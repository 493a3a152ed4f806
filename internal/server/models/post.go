// Package models defines server-side data models shared by repositories,
// services and the HTTP API.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog entry. UserID is the owner and never changes after creation.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	URL       string     `json:"url"`
	Likes     int        `json:"likes"`
	UserID    string     `json:"-"`
	User      *OwnerView `json:"user,omitempty"`
	CreatedAt time.Time  `json:"-"`
}

// OwnerView is the part of the owning user embedded in a Post on reads.
type OwnerView struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (p *Post) Summary() PostSummary {
	return PostSummary{ID: p.ID, Title: p.Title, Author: p.Author, URL: p.URL, Likes: p.Likes}
}

// SameID compares identifiers on their canonical form. Two UUIDs written
// differently (case, braces, urn prefix) are equal; anything else must match
// exactly.
func SameID(a, b string) bool {
	if a == b {
		return a != ""
	}
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	return ua == ub
}
