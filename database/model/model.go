// Package model defines the persistent entities of minibook.
package model

import "time"

// User is a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	Id            string    `json:"id" gorm:"primaryKey;size:36"`
	FirstName     string    `json:"firstName" form:"firstName"`
	LastName      string    `json:"lastName" form:"lastName"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"column:password_hash;not null"`
	TermsAccepted bool      `json:"termsAccepted" gorm:"not null"`
	Photo         string    `json:"photo"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FullName returns the display name; LastName may be empty.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Post is a photo post. LikedUserIds holds each liker at most once and is
// persisted as a JSON column.
type Post struct {
	Id           string    `json:"id" gorm:"primaryKey;size:36"`
	Photo        string    `json:"photo" gorm:"not null"`
	About        string    `json:"about" form:"about"`
	CreatedAt    time.Time `json:"date"`
	LikedUserIds []string  `json:"likedUserId" gorm:"serializer:json"`
	UserId       string    `json:"user" gorm:"index;not null"`

	User *User `json:"-" gorm:"-"`
}

// LikedBy reports whether the given user currently likes the post.
func (p *Post) LikedBy(userId string) bool {
	for _, id := range p.LikedUserIds {
		if id == userId {
			return true
		}
	}
	return false
}

// LikeCount returns the number of distinct likers.
func (p *Post) LikeCount() int {
	return len(p.LikedUserIds)
}
