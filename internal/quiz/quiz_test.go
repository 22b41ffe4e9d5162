package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	mock_quiz "github.com/at-ishikawa/hanfr/internal/mocks/quiz"
	"github.com/at-ishikawa/hanfr/internal/search"
	"github.com/at-ishikawa/hanfr/internal/state"
	"github.com/at-ishikawa/hanfr/internal/vocabulary"
)

func seeded(seed uint64) func() *rand.Rand {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, seed))
	}
}

func assertValidQuestion(t *testing.T, question Question, choiceCount int) {
	t.Helper()
	assert.Len(t, question.Choices, choiceCount)
	assert.Contains(t, question.Choices, question.CorrectAnswer)
	deduped := slices.Compact(slices.Sorted(slices.Values(question.Choices)))
	assert.Len(t, deduped, choiceCount, "duplicate choices in %v", question.Choices)
}

func TestShuffle(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	input := []int{1, 2, 3, 4, 5, 6, 7, 8}

	got := Shuffle(rng, input)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, input)
	assert.ElementsMatch(t, input, got)

	assert.Empty(t, Shuffle(rng, []int{}))
	assert.Equal(t, []string{"only"}, Shuffle(rng, []string{"only"}))
}

func TestShuffle_Uniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	counts := map[string]int{}
	const rounds = 6000
	for range rounds {
		counts[fmt.Sprint(Shuffle(rng, []int{1, 2, 3}))]++
	}
	require.Len(t, counts, 6)
	for permutation, count := range counts {
		assert.InDelta(t, rounds/6, count, rounds/6*0.15, permutation)
	}
}

func TestNewStaticGenerator(t *testing.T) {
	tests := []struct {
		name    string
		words   []vocabulary.Word
		wantErr bool
	}{
		{
			name: "four distinct terms",
			words: []vocabulary.Word{
				{Korean: "개", French: "Chien"},
				{Korean: "고양이", French: "Chat"},
				{Korean: "물", French: "Eau"},
				{Korean: "불", French: "Feu"},
			},
		},
		{
			name: "shared french terms leave too few answers",
			words: []vocabulary.Word{
				{Korean: "개", French: "Chien"},
				{Korean: "강아지", French: "Chien"},
				{Korean: "물", French: "Eau"},
				{Korean: "불", French: "Feu"},
			},
			wantErr: true,
		},
		{
			name:    "empty",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStaticGenerator(tt.words)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsufficientData)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.words), got.Size())
		})
	}
}

func TestStaticGenerator_Generate(t *testing.T) {
	words, err := vocabulary.Bundled()
	require.NoError(t, err)
	generator, err := NewStaticGenerator(words)
	require.NoError(t, err)
	generator.newRand = seeded(42)

	for _, direction := range krdict.AllDirections {
		t.Run(string(direction), func(t *testing.T) {
			questions := generator.Generate(direction, 50)
			require.Len(t, questions, 50)
			for _, question := range questions {
				assertValidQuestion(t, question, 4)
				assert.Equal(t, direction, question.Direction)
			}
		})
	}
}

func TestStaticGenerator_GenerateDirection(t *testing.T) {
	words := []vocabulary.Word{
		{Korean: "개", French: "Chien"},
		{Korean: "고양이", French: "Chat"},
		{Korean: "물", French: "Eau"},
		{Korean: "불", French: "Feu"},
		{Korean: "나무", French: "Arbre"},
	}
	generator, err := NewStaticGenerator(words)
	require.NoError(t, err)
	generator.newRand = seeded(7)

	french := map[string]string{}
	for _, word := range words {
		french[word.Korean] = word.French
	}
	for _, question := range generator.Generate(krdict.KoreanToFrench, 5) {
		assert.Equal(t, french[question.Prompt], question.CorrectAnswer)
	}

	korean := map[string]string{}
	for _, word := range words {
		korean[word.French] = word.Korean
	}
	for _, question := range generator.Generate(krdict.FrenchToKorean, 5) {
		assert.Equal(t, korean[question.Prompt], question.CorrectAnswer)
	}
}

func TestStaticGenerator_PoolExhaustion(t *testing.T) {
	words := []vocabulary.Word{
		{Korean: "개", French: "Chien"},
		{Korean: "고양이", French: "Chat"},
		{Korean: "물", French: "Eau"},
		{Korean: "불", French: "Feu"},
		{Korean: "나무", French: "Arbre"},
	}
	generator, err := NewStaticGenerator(words)
	require.NoError(t, err)

	questions := generator.Generate(krdict.KoreanToFrench, 20)
	require.Len(t, questions, len(words))

	prompts := make([]string, 0, len(questions))
	for _, question := range questions {
		prompts = append(prompts, question.Prompt)
	}
	assert.ElementsMatch(t, []string{"개", "고양이", "물", "불", "나무"}, prompts)

	assert.Empty(t, generator.Generate(krdict.KoreanToFrench, 0))
}

func TestStaticGenerator_WithCategories(t *testing.T) {
	words := []vocabulary.Word{
		{Korean: "개", French: "Chien", Category: "animaux"},
		{Korean: "고양이", French: "Chat", Category: "animaux"},
		{Korean: "말", French: "Cheval", Category: "animaux"},
		{Korean: "소", French: "Vache", Category: "animaux"},
		{Korean: "물", French: "Eau", Category: "nature"},
		{Korean: "불", French: "Feu", Category: "nature"},
	}
	generator, err := NewStaticGenerator(words)
	require.NoError(t, err)

	animals, err := generator.WithCategories("animaux")
	require.NoError(t, err)
	assert.Equal(t, 4, animals.Size())
	for _, question := range animals.Generate(krdict.KoreanToFrench, 10) {
		assertValidQuestion(t, question, 4)
		assert.NotContains(t, question.Choices, "Eau")
		assert.NotContains(t, question.Choices, "Feu")
	}

	_, err = generator.WithCategories("nature")
	assert.ErrorIs(t, err, ErrInsufficientData)
	var insufficientErr *InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Contains(t, insufficientErr.Reason, "at least 4")
}

func TestStaticGenerator_SharedTerms(t *testing.T) {
	words := []vocabulary.Word{
		{Korean: "개", French: "Chien"},
		{Korean: "강아지", French: "Chien"},
		{Korean: "고양이", French: "Chat"},
		{Korean: "물", French: "Eau"},
		{Korean: "불", French: "Feu"},
	}
	generator, err := NewStaticGenerator(words)
	require.NoError(t, err)

	for seed := range uint64(50) {
		generator.newRand = seeded(seed)
		for _, question := range generator.Generate(krdict.KoreanToFrench, len(words)) {
			assertValidQuestion(t, question, 4)
		}
	}
}

func result(word, french string) *search.Result {
	entries := []krdict.Entry{}
	if word != "" {
		entries = append(entries, krdict.Entry{
			TargetCode: word,
			Word:       word,
			Senses: []krdict.Sense{
				{Order: "1", Translation: &krdict.Translation{Word: french}},
				{Order: "2", Translation: &krdict.Translation{Word: "ignored"}},
			},
		})
	}
	return &search.Result{Entries: entries, Count: len(entries)}
}

func historyOf(direction krdict.Direction, queries ...string) []state.HistoryItem {
	items := make([]state.HistoryItem, 0, len(queries))
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, query := range queries {
		items = append(items, state.HistoryItem{Query: query, Direction: direction, At: at.Add(-time.Duration(i) * time.Minute)})
	}
	return items
}

func TestHistoryGenerator_Generate(t *testing.T) {
	dictionary := map[string]*search.Result{
		"사랑":  result("사랑", "amour"),
		"물":   result("물", "eau"),
		"불":   result("불", "feu"),
		"나무":  result("나무", "arbre"),
		"하늘":  result("하늘", "ciel"),
		"없음":  result("", ""),
		"바다":  result("바다", "mer"),
		"amour": result("사랑", "amour"),
		"eau":   result("물", "eau"),
		"feu":   result("불", "feu"),
	}

	tests := []struct {
		name          string
		history       []state.HistoryItem
		direction     krdict.Direction
		failing       []string
		wantSearches  []string
		wantQuestions int
		wantErr       error
	}{
		{
			name:          "five newest searches",
			history:       historyOf(krdict.KoreanToFrench, "사랑", "물", "불", "나무", "하늘", "바다"),
			direction:     krdict.KoreanToFrench,
			wantSearches:  []string{"사랑", "물", "불", "나무", "하늘"},
			wantQuestions: 5,
		},
		{
			name: "only searches in the requested direction",
			history: append(
				historyOf(krdict.FrenchToKorean, "amour", "eau", "feu"),
				historyOf(krdict.KoreanToFrench, "나무", "하늘")...,
			),
			direction:     krdict.FrenchToKorean,
			wantSearches:  []string{"amour", "eau", "feu"},
			wantQuestions: 3,
		},
		{
			name:          "unresolved searches are skipped",
			history:       historyOf(krdict.KoreanToFrench, "사랑", "없음", "물", "불"),
			direction:     krdict.KoreanToFrench,
			wantSearches:  []string{"사랑", "없음", "물", "불"},
			wantQuestions: 3,
		},
		{
			name:          "failing searches are skipped",
			history:       historyOf(krdict.KoreanToFrench, "사랑", "물", "불", "나무"),
			direction:     krdict.KoreanToFrench,
			failing:       []string{"물"},
			wantSearches:  []string{"사랑", "물", "불", "나무"},
			wantQuestions: 3,
		},
		{
			name:         "too few resolved pairs",
			history:      historyOf(krdict.KoreanToFrench, "사랑", "없음", "물"),
			direction:    krdict.KoreanToFrench,
			wantSearches: []string{"사랑", "없음", "물"},
			wantErr:      ErrInsufficientData,
		},
		{
			name:      "too few searches in the direction",
			history:   append(historyOf(krdict.KoreanToFrench, "사랑", "물"), historyOf(krdict.FrenchToKorean, "feu")...),
			direction: krdict.KoreanToFrench,
			wantErr:   ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mock_quiz.NewMockResolver(ctrl)
			for _, query := range tt.wantSearches {
				if slices.Contains(tt.failing, query) {
					resolver.EXPECT().Search(gomock.Any(), query, krdict.KoreanToFrench).
						Return(nil, &search.UpstreamError{Status: 503}).Times(1)
					continue
				}
				resolver.EXPECT().Search(gomock.Any(), query, krdict.KoreanToFrench).
					Return(dictionary[query], nil).Times(1)
			}

			generator := NewHistoryGenerator(resolver, DefaultHistoryLimit)
			generator.newRand = seeded(1)
			got, err := generator.Generate(context.Background(), tt.history, tt.direction)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var insufficient *InsufficientDataError
				assert.ErrorAs(t, err, &insufficient)
				assert.NotEmpty(t, insufficient.Reason)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantQuestions)
			for _, question := range got {
				assertValidQuestion(t, question, 3)
				assert.Equal(t, tt.direction, question.Direction)
			}
		})
	}
}

func TestHistoryGenerator_Pairs(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mock_quiz.NewMockResolver(ctrl)
	resolver.EXPECT().Search(gomock.Any(), "사랑", krdict.KoreanToFrench).Return(result("사랑", "amour"), nil)
	resolver.EXPECT().Search(gomock.Any(), "물", krdict.KoreanToFrench).Return(result("물", "eau"), nil)
	resolver.EXPECT().Search(gomock.Any(), "불", krdict.KoreanToFrench).Return(&search.Result{
		Entries: []krdict.Entry{{
			Word:   "불",
			Senses: []krdict.Sense{{Translation: &krdict.Translation{Definition: "Phénomène de combustion."}}},
		}},
	}, nil)

	generator := NewHistoryGenerator(resolver, DefaultHistoryLimit)
	got, err := generator.Generate(context.Background(), historyOf(krdict.FrenchToKorean, "사랑", "물", "불"), krdict.FrenchToKorean)
	require.NoError(t, err)

	answers := map[string]string{}
	for _, question := range got {
		answers[question.Prompt] = question.CorrectAnswer
	}
	assert.Equal(t, map[string]string{
		"amour":                    "사랑",
		"eau":                      "물",
		"Phénomène de combustion.": "불",
	}, answers)
}

func TestHistoryGenerator_TooFewQuestions(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mock_quiz.NewMockResolver(ctrl)
	resolver.EXPECT().Search(gomock.Any(), "개", gomock.Any()).Return(result("개", "chien"), nil)
	resolver.EXPECT().Search(gomock.Any(), "강아지", gomock.Any()).Return(result("강아지", "chien"), nil)
	resolver.EXPECT().Search(gomock.Any(), "고양이", gomock.Any()).Return(result("고양이", "chat"), nil)

	generator := NewHistoryGenerator(resolver, DefaultHistoryLimit)
	_, err := generator.Generate(context.Background(), historyOf(krdict.KoreanToFrench, "개", "강아지", "고양이"), krdict.KoreanToFrench)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestHistoryGenerator_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctrl := gomock.NewController(t)
	resolver := mock_quiz.NewMockResolver(ctrl)
	resolver.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, context.Canceled).Times(3)

	generator := NewHistoryGenerator(resolver, DefaultHistoryLimit)
	_, err := generator.Generate(ctx, historyOf(krdict.KoreanToFrench, "사랑", "물", "불"), krdict.KoreanToFrench)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrInsufficientData))
}

func TestSession(t *testing.T) {
	session := NewSession([]Question{
		{Prompt: "사랑", CorrectAnswer: "amour", Choices: []string{"amour", "eau", "feu"}},
		{Prompt: "물", CorrectAnswer: "eau", Choices: []string{"amour", "eau", "feu"}},
	})
	assert.Equal(t, 2, session.Len())

	current, ok := session.Current()
	require.True(t, ok)
	assert.Equal(t, "사랑", current.Prompt)
	assert.Equal(t, 1, session.Position())

	answer, err := session.Answer("amour")
	require.NoError(t, err)
	assert.Equal(t, Answer{Correct: true, CorrectAnswer: "amour"}, answer)

	answer, err = session.Answer("feu")
	require.NoError(t, err)
	assert.Equal(t, Answer{Correct: false, CorrectAnswer: "eau"}, answer)

	assert.True(t, session.Finished())
	correct, answered := session.Score()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 2, answered)

	_, err = session.Answer("eau")
	assert.ErrorIs(t, err, ErrSessionFinished)
}
