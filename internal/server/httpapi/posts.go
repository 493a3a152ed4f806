package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/dmitrijs2005/bloglist/internal/server/services"
)

func (s *Server) authenticate(r *http.Request) (*models.User, error) {
	return s.users.Authenticate(r.Context(), bearerToken(r))
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	user, err := s.authenticate(r)
	if err != nil {
		s.fail(w, r, err, msgTokenInvalid)
		return
	}

	var in services.PostInput
	if !decodeBody(w, r, &in) {
		return
	}

	post, err := s.posts.Create(r.Context(), in, user)
	if err != nil {
		s.fail(w, r, err, msgTokenInvalid)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	var user *models.User
	if s.posts.RequiresOwnerOnUpdate() {
		var err error
		if user, err = s.authenticate(r); err != nil {
			s.fail(w, r, err, msgTokenInvalid)
			return
		}
	}

	var in services.PostInput
	if !decodeBody(w, r, &in) {
		return
	}

	post, err := s.posts.Update(r.Context(), r.PathValue("id"), in, user)
	if err != nil {
		s.fail(w, r, err, msgCannotUpdate)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.authenticate(r)
	if err != nil {
		s.fail(w, r, err, msgTokenInvalid)
		return
	}

	if err := s.posts.Delete(r.Context(), r.PathValue("id"), user); err != nil {
		s.fail(w, r, err, msgCannotDelete)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
