package quiz

import "errors"

// ErrSessionFinished is returned when answering after the last question.
var ErrSessionFinished = errors.New("the quiz is finished")

// Answer is the outcome of one answered question.
type Answer struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Session walks through a list of questions and keeps the running score.
type Session struct {
	questions []Question
	index     int
	correct   int
}

func NewSession(questions []Question) *Session {
	return &Session{questions: questions}
}

// Current returns the question to answer next.
func (s *Session) Current() (Question, bool) {
	if s.Finished() {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Answer checks choice against the current question and moves to the next one.
func (s *Session) Answer(choice string) (Answer, error) {
	question, ok := s.Current()
	if !ok {
		return Answer{}, ErrSessionFinished
	}
	s.index++
	answer := Answer{
		Correct:       choice == question.CorrectAnswer,
		CorrectAnswer: question.CorrectAnswer,
	}
	if answer.Correct {
		s.correct++
	}
	return answer, nil
}

func (s *Session) Finished() bool {
	return s.index >= len(s.questions)
}

// Score returns the number of correct answers and of answered questions.
func (s *Session) Score() (correct, answered int) {
	return s.correct, s.index
}

// Len is the number of questions.
func (s *Session) Len() int {
	return len(s.questions)
}

// Position is the 1-based number of the current question.
func (s *Session) Position() int {
	return s.index + 1
}
