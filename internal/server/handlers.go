package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/quiz"
	"github.com/at-ishikawa/hanfr/internal/state"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	direction, err := krdict.ParseDirection(r.URL.Query().Get("dir"))
	if err != nil {
		writeError(w, r, &badRequestError{reason: err.Error()})
		return
	}

	result, err := s.searcher.Search(r.Context(), query, direction)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.state.History.Push(r.Context(), result.Query, result.Direction); err != nil {
		slog.Default().Warn("failed to record a search in the history",
			slog.String("query", result.Query),
			slog.Any("error", err),
		)
	}
	writeJSON(w, http.StatusOK, result)
}

type historyResponse struct {
	History []state.HistoryItem `json:"history"`
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.state.History.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{History: items})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.state.History.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveHistory(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, r, &badRequestError{reason: "index must be a number"})
		return
	}
	if err := s.state.History.Remove(r.Context(), index); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type favoritesResponse struct {
	Favorites []krdict.Entry `json:"favorites"`
}

type addFavoriteResponse struct {
	Added bool `json:"added"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	entries, err := s.state.Favorites.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: entries})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var entry krdict.Entry
	if err := s.decodeJSON(w, r, &entry); err != nil {
		writeError(w, r, err)
		return
	}
	if entry.TargetCode == "" {
		writeError(w, r, &badRequestError{reason: "targetCode is a required field"})
		return
	}

	added, err := s.state.Favorites.Add(r.Context(), entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, addFavoriteResponse{Added: added})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.state.Favorites.Remove(r.Context(), r.PathValue("targetCode")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type preferences struct {
	Direction krdict.Direction `json:"direction,omitempty" validate:"omitempty,oneof=ko-fr fr-ko"`
	Theme     state.Theme      `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
}

func (s *Server) currentPreferences(r *http.Request) (preferences, error) {
	direction, err := s.state.Preferences.Direction(r.Context())
	if err != nil {
		return preferences{}, err
	}
	theme, err := s.state.Preferences.Theme(r.Context())
	if err != nil {
		return preferences{}, err
	}
	return preferences{Direction: direction, Theme: theme}, nil
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	current, err := s.currentPreferences(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var update preferences
	if err := s.decodeJSON(w, r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	if update.Direction != "" {
		if err := s.state.Preferences.SetDirection(r.Context(), update.Direction); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if update.Theme != "" {
		if err := s.state.Preferences.SetTheme(r.Context(), update.Theme); err != nil {
			writeError(w, r, err)
			return
		}
	}

	current, err := s.currentPreferences(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

type staticQuizRequest struct {
	Direction  krdict.Direction `json:"direction" validate:"omitempty,oneof=ko-fr fr-ko"`
	Count      int              `json:"count" validate:"omitempty,min=5,max=50"`
	Categories []string         `json:"categories"`
}

type historyQuizRequest struct {
	Direction krdict.Direction `json:"direction" validate:"omitempty,oneof=ko-fr fr-ko"`
}

type quizResponse struct {
	Questions []quiz.Question `json:"questions"`
}

func (s *Server) handleStaticQuiz(w http.ResponseWriter, r *http.Request) {
	request := staticQuizRequest{
		Direction: krdict.KoreanToFrench,
		Count:     s.defaultCount,
	}
	if err := s.decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	if request.Direction == "" {
		request.Direction = krdict.KoreanToFrench
	}
	if request.Count == 0 {
		request.Count = s.defaultCount
	}

	generator := s.static
	if len(request.Categories) > 0 {
		var err error
		generator, err = s.static.WithCategories(request.Categories...)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, quizResponse{Questions: generator.Generate(request.Direction, request.Count)})
}

func (s *Server) handleHistoryQuiz(w http.ResponseWriter, r *http.Request) {
	request := historyQuizRequest{Direction: krdict.KoreanToFrench}
	if err := s.decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	if request.Direction == "" {
		request.Direction = krdict.KoreanToFrench
	}

	history, err := s.state.History.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	questions, err := s.history.Generate(r.Context(), history, request.Direction)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{Questions: questions})
}

type quizStatsResponse struct {
	state.QuizStats
	Percentage int `json:"percentage"`
}

type quizAnswerRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

func (s *Server) writeQuizStats(w http.ResponseWriter, stats state.QuizStats) {
	writeJSON(w, http.StatusOK, quizStatsResponse{QuizStats: stats, Percentage: stats.Percentage()})
}

func (s *Server) handleGetQuizStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.state.QuizStats.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeQuizStats(w, stats)
}

func (s *Server) handleRecordQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var request quizAnswerRequest
	if err := s.decodeJSON(w, r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	stats, err := s.state.QuizStats.Record(r.Context(), *request.Correct)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeQuizStats(w, stats)
}

func (s *Server) handleResetQuizStats(w http.ResponseWriter, r *http.Request) {
	if err := s.state.QuizStats.Reset(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
