package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/search"
	"github.com/at-ishikawa/hanfr/internal/state"
)

const maxSensesPerEntry = 3

func newTable(w io.Writer, headers ...interface{}) table.Table {
	return table.New(headers...).
		WithWriter(w).
		WithHeaderFormatter(color.New(color.FgGreen, color.Underline).SprintfFunc()).
		WithFirstColumnFormatter(color.New(color.FgYellow).SprintfFunc())
}

// PrintSearchResult prints one row per sense, with at most three senses per entry.
func PrintSearchResult(w io.Writer, result *search.Result) {
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "%s %s: %d result(s)\n\n", result.Direction.Label(), bold.Sprint(result.Query), result.Count)
	if result.Count == 0 {
		fmt.Fprintln(w, "No result found")
	} else {
		tbl := newTable(w, "#", "Word", "POS", "Français", "Définition")
		for i, entry := range result.Entries {
			tbl.AddRow(i+1, headword(entry), entry.POS, "", "")
			for _, sense := range firstSenses(entry) {
				tbl.AddRow("", "", "", sense.TranslationWord(), senseDefinition(sense))
			}
		}
		tbl.Print()
	}
	fmt.Fprintf(w, "\nSource: %s, %s\n", result.Attribution.Source, result.Attribution.License)
}

// PrintHistory prints the history, newest first, with the index used by
// "history remove".
func PrintHistory(w io.Writer, items []state.HistoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No search history")
		return
	}
	tbl := newTable(w, "#", "Query", "Direction", "Searched at")
	for i, item := range items {
		tbl.AddRow(i, item.Query, item.Direction.Label(), item.At.Local().Format(time.DateTime))
	}
	tbl.Print()
}

func PrintFavorites(w io.Writer, entries []krdict.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No favorite")
		return
	}
	tbl := newTable(w, "Code", "Word", "POS", "Français")
	for _, entry := range entries {
		translations := make([]string, 0, maxSensesPerEntry)
		for _, sense := range firstSenses(entry) {
			if word := sense.TranslationWord(); word != "" {
				translations = append(translations, word)
			}
		}
		tbl.AddRow(entry.TargetCode, headword(entry), entry.POS, strings.Join(translations, ", "))
	}
	tbl.Print()
}

func PrintQuizStats(w io.Writer, stats state.QuizStats) {
	fmt.Fprintf(w, "Answered: %d, Correct: %d (%d%%)\n", stats.Total, stats.Correct, stats.Percentage())
}

func headword(entry krdict.Entry) string {
	if entry.Origin == "" {
		return entry.Word
	}
	return fmt.Sprintf("%s (%s)", entry.Word, entry.Origin)
}

func firstSenses(entry krdict.Entry) []krdict.Sense {
	return entry.Senses[:min(len(entry.Senses), maxSensesPerEntry)]
}

func senseDefinition(sense krdict.Sense) string {
	if definition := sense.TranslationDefinition(); definition != "" {
		return definition
	}
	return sense.Definition
}
