package models

import "time"

// User is an account that owns posts.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string `json:"-"`
	// Posts holds owned post ids in creation order.
	Posts     []string
	CreatedAt time.Time
}

// UserView is the public representation of a User. It has no field for the
// password hash, so the hash cannot leak through serialization.
type UserView struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Posts    []string `json:"posts"`
}

func (u *User) View() UserView {
	posts := u.Posts
	if posts == nil {
		posts = []string{}
	}
	return UserView{ID: u.ID, Username: u.Username, Name: u.Name, Posts: posts}
}

// PostSummary is a post as listed under its owner.
type PostSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// UserWithPosts is a user listing entry with owned posts expanded.
type UserWithPosts struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Posts    []PostSummary `json:"posts"`
}
