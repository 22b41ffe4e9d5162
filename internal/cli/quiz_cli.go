package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/hanfr/internal/quiz"
	"github.com/at-ishikawa/hanfr/internal/state"
)

var errEnd = errors.New("end")

//go:generate mockgen -source=quiz_cli.go -destination=../mocks/cli/mock_cli.go -package=mock_cli

// StatsRecorder stores the outcome of each answered question.
type StatsRecorder interface {
	Record(ctx context.Context, correct bool) (state.QuizStats, error)
}

// QuizCLI asks the questions of a quiz one by one on a terminal.
type QuizCLI struct {
	session      *quiz.Session
	stats        StatsRecorder
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
}

// NewQuizCLI returns a CLI over questions. stats may be nil when the answers
// should not be recorded.
func NewQuizCLI(questions []quiz.Question, stats StatsRecorder) *QuizCLI {
	return newQuizCLI(questions, stats, os.Stdin, os.Stdout)
}

func newQuizCLI(questions []quiz.Question, stats StatsRecorder, stdin io.Reader, stdout io.Writer) *QuizCLI {
	return &QuizCLI{
		session:      quiz.NewSession(questions),
		stats:        stats,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}
}

// Run asks every question until the quiz ends, the user quits or the process
// is interrupted, then prints the score.
func (cli *QuizCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := cli.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("cli.Session > %w", err)
		}
	}
	cli.printScore()
	return nil
}

// Session asks the current question and reads one answer.
func (cli *QuizCLI) Session(ctx context.Context) error {
	question, ok := cli.session.Current()
	if !ok {
		return errEnd
	}

	fmt.Fprintf(cli.stdoutWriter, "[%d/%d] %s\n", cli.session.Position(), cli.session.Len(), question.Direction.Label())
	_, _ = cli.bold.Fprintln(cli.stdoutWriter, question.Prompt)
	for i, choice := range question.Choices {
		fmt.Fprintf(cli.stdoutWriter, "  %d. %s\n", i+1, choice)
	}
	fmt.Fprint(cli.stdoutWriter, "> ")

	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("error reading input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			return errEnd
		}
	}
	input := strings.TrimSpace(line)
	if input == "quit" || input == "q" {
		return errEnd
	}
	choice, ok := resolveChoice(input, question.Choices)
	if !ok {
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Enter a number between 1 and %d\n\n", len(question.Choices))
		return nil
	}

	answer, err := cli.session.Answer(choice)
	if err != nil {
		return fmt.Errorf("session.Answer > %w", err)
	}
	if answer.Correct {
		fmt.Fprint(cli.stdoutWriter, "✅ ")
		_, _ = cli.green.Fprintf(cli.stdoutWriter, "Correct: %s\n\n", cli.italic.Sprint(answer.CorrectAnswer))
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Wrong. The answer is %s\n\n", cli.italic.Sprint(answer.CorrectAnswer))
	}

	if cli.stats != nil {
		if _, err := cli.stats.Record(ctx, answer.Correct); err != nil {
			return fmt.Errorf("stats.Record > %w", err)
		}
	}
	return nil
}

func (cli *QuizCLI) printScore() {
	correct, answered := cli.session.Score()
	score := state.QuizStats{Total: answered, Correct: correct}
	fmt.Fprintf(cli.stdoutWriter, "Score: %s (%d%%)\n",
		cli.bold.Sprintf("%d/%d", correct, answered),
		score.Percentage(),
	)
}

// resolveChoice accepts either the 1-based number of a choice or its text.
func resolveChoice(input string, choices []string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(choices) {
			return "", false
		}
		return choices[n-1], true
	}
	for _, choice := range choices {
		if strings.EqualFold(choice, input) {
			return choice, true
		}
	}
	return "", false
}
