// Package stats computes aggregate figures over a list of posts. All
// functions are pure. Ties go to whatever was encountered first in the
// input.
package stats

import "github.com/dmitrijs2005/bloglist/internal/server/models"

// Favorite is the most liked post.
type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorCount is an author with the number of posts written.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// AuthorLikes is an author with the likes summed over their posts.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Report bundles every aggregate. Pointer fields are nil for no posts.
type Report struct {
	TotalLikes         int          `json:"total_likes"`
	FavoritePost       *Favorite    `json:"favorite_post"`
	MostProlificAuthor *AuthorCount `json:"most_prolific_author"`
	MostLikedAuthor    *AuthorLikes `json:"most_liked_author"`
}

func TotalLikes(posts []models.Post) int {
	total := 0
	for _, p := range posts {
		total += p.Likes
	}
	return total
}

func FavoritePost(posts []models.Post) (*Favorite, bool) {
	if len(posts) == 0 {
		return nil, false
	}

	best := posts[0]
	for _, p := range posts[1:] {
		if p.Likes > best.Likes {
			best = p
		}
	}
	return &Favorite{Title: best.Title, Author: best.Author, Likes: best.Likes}, true
}

func MostProlificAuthor(posts []models.Post) (*AuthorCount, bool) {
	author, n, ok := topAuthor(posts, func(models.Post) int { return 1 })
	if !ok {
		return nil, false
	}
	return &AuthorCount{Author: author, Count: n}, true
}

func MostLikedAuthor(posts []models.Post) (*AuthorLikes, bool) {
	author, n, ok := topAuthor(posts, func(p models.Post) int { return p.Likes })
	if !ok {
		return nil, false
	}
	return &AuthorLikes{Author: author, Likes: n}, true
}

func Summarize(posts []models.Post) Report {
	r := Report{TotalLikes: TotalLikes(posts)}
	r.FavoritePost, _ = FavoritePost(posts)
	r.MostProlificAuthor, _ = MostProlificAuthor(posts)
	r.MostLikedAuthor, _ = MostLikedAuthor(posts)
	return r
}

// topAuthor sums weight per author and returns the author with the largest
// total, keeping the earliest author on ties.
func topAuthor(posts []models.Post, weight func(models.Post) int) (string, int, bool) {
	if len(posts) == 0 {
		return "", 0, false
	}

	totals := make(map[string]int)
	var order []string
	for _, p := range posts {
		if _, seen := totals[p.Author]; !seen {
			order = append(order, p.Author)
		}
		totals[p.Author] += weight(p)
	}

	best := order[0]
	for _, a := range order[1:] {
		if totals[a] > totals[best] {
			best = a
		}
	}
	return best, totals[best], true
}
