package client

// Owner is the user embedded in a Post.
type Owner struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Post struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   *Owner `json:"user,omitempty"`
}

// NewPost is the body of a create request. Likes is omitted when nil so the
// server applies its default.
type NewPost struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes,omitempty"`
}

type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Posts    []string `json:"posts"`
}

type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type Stats struct {
	TotalLikes         int          `json:"total_likes"`
	FavoritePost       *Favorite    `json:"favorite_post"`
	MostProlificAuthor *AuthorCount `json:"most_prolific_author"`
	MostLikedAuthor    *AuthorLikes `json:"most_liked_author"`
}
