// Package export writes favorites and search history to files.
package export

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/mandolyte/mdtopdf"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/search"
	"github.com/at-ishikawa/hanfr/internal/state"
)

const favoritesTemplateName = "favorites.md.go.tmpl"

//go:embed templates/favorites.md.go.tmpl
var fallbackFavoritesTemplate string

type favoritesData struct {
	Entries     []krdict.Entry
	Attribution search.Attribution
}

// ParseFavoritesTemplate parses templatePath, or the embedded template when
// templatePath is empty or cannot be parsed.
func ParseFavoritesTemplate(templatePath string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(favoritesTemplateName).Parse(fallbackFavoritesTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// WriteFavoritesMarkdown renders entries as Markdown.
func WriteFavoritesMarkdown(w io.Writer, tmpl *template.Template, entries []krdict.Entry) error {
	if err := tmpl.Execute(w, favoritesData{
		Entries:     entries,
		Attribution: search.KRDictAttribution,
	}); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// ExportFavorites writes entries to outputPath. A path ending with .pdf gets a
// PDF next to the intermediate Markdown file; anything else gets Markdown only.
// It returns the path of the file written last.
func ExportFavorites(outputPath string, tmpl *template.Template, entries []krdict.Entry) (string, error) {
	markdownPath := outputPath
	wantPDF := strings.EqualFold(filepath.Ext(outputPath), ".pdf")
	if wantPDF {
		markdownPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".md"
	}

	if err := os.MkdirAll(filepath.Dir(markdownPath), 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(markdownPath), err)
	}
	file, err := os.Create(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	if err := WriteFavoritesMarkdown(file, tmpl, entries); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("file.Close() > %w", err)
	}
	if !wantPDF {
		return markdownPath, nil
	}
	return ConvertMarkdownToPDF(markdownPath)
}

// ConvertMarkdownToPDF converts a markdown file to a PDF in the same directory.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

type historyFile struct {
	History []state.HistoryItem `yaml:"history"`
}

// WriteHistoryYAML writes items as a YAML document.
func WriteHistoryYAML(w io.Writer, items []state.HistoryItem) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(historyFile{History: items}); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}
