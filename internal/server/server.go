// Package server serves the dictionary search, the quizzes and the local state
// as a JSON API.
package server

import (
	"context"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/hanfr/internal/config"
	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/quiz"
	"github.com/at-ishikawa/hanfr/internal/search"
	"github.com/at-ishikawa/hanfr/internal/state"
)

// Searcher resolves dictionary queries.
type Searcher interface {
	Search(ctx context.Context, query string, direction krdict.Direction) (*search.Result, error)
}

// Server holds the dependencies of the API handlers.
type Server struct {
	searcher     Searcher
	state        *state.State
	static       *quiz.StaticGenerator
	history      *quiz.HistoryGenerator
	validator    *config.Validator
	defaultCount int
	origins      []string
}

func NewServer(
	cfg *config.Config,
	searcher Searcher,
	st *state.State,
	static *quiz.StaticGenerator,
	history *quiz.HistoryGenerator,
) (*Server, error) {
	validate, err := config.NewValidator("json")
	if err != nil {
		return nil, err
	}
	return &Server{
		searcher:     searcher,
		state:        st,
		static:       static,
		history:      history,
		validator:    validate,
		defaultCount: cfg.Quiz.DefaultCount,
		origins:      cfg.Server.CORS.AllowedOrigins,
	}, nil
}

// Handler returns the API routes behind the CORS and recovery middlewares.
// It accepts both HTTP/1.1 and cleartext HTTP/2.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/krdict/search", s.handleSearch)

	mux.HandleFunc("GET /api/history", s.handleListHistory)
	mux.HandleFunc("DELETE /api/history", s.handleClearHistory)
	mux.HandleFunc("DELETE /api/history/{index}", s.handleRemoveHistory)

	mux.HandleFunc("GET /api/favorites", s.handleListFavorites)
	mux.HandleFunc("POST /api/favorites", s.handleAddFavorite)
	mux.HandleFunc("DELETE /api/favorites/{targetCode}", s.handleRemoveFavorite)

	mux.HandleFunc("GET /api/preferences", s.handleGetPreferences)
	mux.HandleFunc("PUT /api/preferences", s.handleUpdatePreferences)

	mux.HandleFunc("POST /api/quiz/static", s.handleStaticQuiz)
	mux.HandleFunc("POST /api/quiz/history", s.handleHistoryQuiz)
	mux.HandleFunc("GET /api/quiz/stats", s.handleGetQuizStats)
	mux.HandleFunc("POST /api/quiz/stats", s.handleRecordQuizAnswer)
	mux.HandleFunc("DELETE /api/quiz/stats", s.handleResetQuizStats)

	return h2c.NewHandler(corsMiddleware(recoverMiddleware(mux), s.origins), &http2.Server{})
}
