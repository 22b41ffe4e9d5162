package state

// Keys of the values kept in a Store.
const (
	KeyHistory   = "history"
	KeyFavorites = "favorites"
	KeyDirection = "direction"
	KeyTheme     = "theme"
	KeyQuizStats = "quiz-stats"
)

// State groups every repository backed by one Store.
type State struct {
	History     *History
	Favorites   *Favorites
	Preferences *Preferences
	QuizStats   *QuizStatsRepository
}

func New(store Store) *State {
	return &State{
		History:     NewHistory(store),
		Favorites:   NewFavorites(store),
		Preferences: NewPreferences(store),
		QuizStats:   NewQuizStatsRepository(store),
	}
}
