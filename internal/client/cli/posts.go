package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bloglist/internal/client/client"
)

func (a *App) List(ctx context.Context) error {
	posts, err := a.api.ListPosts(ctx)
	if err != nil {
		return a.report(err)
	}

	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts")
		return nil
	}
	for _, p := range posts {
		fmt.Fprintln(a.out, formatPost(p))
	}
	return nil
}

// Add prompts for a new post. An empty likes answer leaves the count to the
// server.
func (a *App) Add(ctx context.Context) error {
	var in client.NewPost
	var err error

	if in.Title, err = getSimpleText(a.reader, "Enter title", a.out); err != nil {
		return err
	}
	if in.Author, err = getSimpleText(a.reader, "Enter author", a.out); err != nil {
		return err
	}
	if in.URL, err = getSimpleText(a.reader, "Enter URL", a.out); err != nil {
		return err
	}
	likes, err := getSimpleText(a.reader, "Enter likes (empty for 0)", a.out)
	if err != nil {
		return err
	}
	if likes != "" {
		n, err := strconv.Atoi(likes)
		if err != nil {
			return a.report(fmt.Errorf("likes must be a number"))
		}
		in.Likes = &n
	}

	p, err := a.api.CreatePost(ctx, in)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Added", formatPost(*p))
	return nil
}

func (a *App) Like(ctx context.Context, id string) error {
	p, err := a.api.Like(ctx, id)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, formatPost(*p))
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.api.DeletePost(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Deleted", id)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s, err := a.api.Stats(ctx)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Total likes: %d\n", s.TotalLikes)
	if f := s.FavoritePost; f != nil {
		fmt.Fprintf(a.out, "Favorite: %q by %s (%d likes)\n", f.Title, f.Author, f.Likes)
	}
	if c := s.MostProlificAuthor; c != nil {
		fmt.Fprintf(a.out, "Most posts: %s (%d)\n", c.Author, c.Count)
	}
	if l := s.MostLikedAuthor; l != nil {
		fmt.Fprintf(a.out, "Most likes: %s (%d)\n", l.Author, l.Likes)
	}
	return nil
}

func formatPost(p client.Post) string {
	s := fmt.Sprintf("[%s] %q by %s, %s, %d likes", p.ID, p.Title, p.Author, p.URL, p.Likes)
	if p.User != nil {
		s += ", added by " + p.User.Username
	}
	return s
}
