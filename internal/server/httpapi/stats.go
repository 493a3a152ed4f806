package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bloglist/internal/server/models"
	"github.com/dmitrijs2005/bloglist/internal/server/reports"
	"github.com/dmitrijs2005/bloglist/internal/server/stats"
)

func (s *Server) snapshot(r *http.Request) ([]models.Post, error) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		return nil, err
	}
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, *p)
	}
	return out, nil
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	posts, err := s.snapshot(r)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, stats.Summarize(posts))
}

func (s *Server) archiveStats(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authenticate(r); err != nil {
		s.fail(w, r, err, msgTokenInvalid)
		return
	}
	if s.archiver == nil {
		writeError(w, http.StatusServiceUnavailable, msgArchiveDisabled)
		return
	}

	posts, err := s.snapshot(r)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}

	archive, err := s.archiver.Store(r.Context(), reports.Snapshot{PostCount: len(posts), Report: stats.Summarize(posts)})
	if err != nil {
		s.fail(w, r, err, "")
		return
	}

	s.logger.Info(r.Context(), "stats archived", "key", archive.Key)
	writeJSON(w, http.StatusCreated, archive)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
