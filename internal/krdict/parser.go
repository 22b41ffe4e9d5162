package krdict

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

type xmlResponse struct {
	XMLName   xml.Name
	Items     []xmlItem `xml:"item"`
	ErrorCode string    `xml:"error_code"`
	Message   string    `xml:"message"`
}

type xmlItem struct {
	TargetCode    string     `xml:"target_code"`
	Word          string     `xml:"word"`
	POS           string     `xml:"pos"`
	Origin        string     `xml:"origin"`
	Pronunciation string     `xml:"pronunciation"`
	Link          string     `xml:"link"`
	Senses        []xmlSense `xml:"sense"`
}

type xmlSense struct {
	Order       string          `xml:"sense_order"`
	Definition  string          `xml:"definition"`
	Translation *xmlTranslation `xml:"translation"`
}

type xmlTranslation struct {
	Lang       string `xml:"trans_lang"`
	Word       string `xml:"trans_word"`
	Definition string `xml:"trans_dfn"`
}

// APIError is returned when KRDict answers with an <error> document,
// which it does with a 200 status for problems such as an invalid key.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("krdict error %s: %s", e.Code, e.Message)
}

// ParseEntries converts a KRDict search response into entries.
// A response without items is an empty list, not an error.
func ParseEntries(r io.Reader) ([]Entry, error) {
	var response xmlResponse
	if err := xml.NewDecoder(r).Decode(&response); err != nil {
		if errors.Is(err, io.EOF) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("xml.Decode > %w", err)
	}

	switch response.XMLName.Local {
	case "error":
		return nil, &APIError{
			Code:    strings.TrimSpace(response.ErrorCode),
			Message: strings.TrimSpace(response.Message),
		}
	case "channel":
	default:
		return []Entry{}, nil
	}

	entries := make([]Entry, 0, len(response.Items))
	for _, item := range response.Items {
		senses := make([]Sense, 0, len(item.Senses))
		for _, s := range item.Senses {
			sense := Sense{
				Order:      strings.TrimSpace(s.Order),
				Definition: strings.TrimSpace(s.Definition),
			}
			if s.Translation != nil {
				sense.Translation = &Translation{
					Lang:       strings.TrimSpace(s.Translation.Lang),
					Word:       strings.TrimSpace(s.Translation.Word),
					Definition: strings.TrimSpace(s.Translation.Definition),
				}
			}
			senses = append(senses, sense)
		}
		entries = append(entries, Entry{
			TargetCode:    strings.TrimSpace(item.TargetCode),
			Word:          strings.TrimSpace(item.Word),
			POS:           strings.TrimSpace(item.POS),
			Origin:        strings.TrimSpace(item.Origin),
			Pronunciation: strings.TrimSpace(item.Pronunciation),
			Link:          strings.TrimSpace(item.Link),
			Senses:        senses,
		})
	}
	return entries, nil
}
