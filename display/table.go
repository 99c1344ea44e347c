package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/wikibase/wikibase"
)

// ClaimsTable renders claims as a table: id, property, rank, value.
// Snaks that fail to decode show their error in the value column.
func ClaimsTable(w io.Writer, claims []wikibase.Claim) error {
	data := pterm.TableData{{"Claim", "Property", "Rank", "Value"}}
	for _, c := range claims {
		data = append(data, []string{c.ID, c.MainSnak.Property, c.Rank, snakText(c.MainSnak)})
		props := make([]string, 0, len(c.Qualifiers))
		for prop := range c.Qualifiers {
			props = append(props, prop)
		}
		sort.Strings(props)
		for _, prop := range props {
			for _, q := range c.Qualifiers[prop] {
				data = append(data, []string{"", "  " + prop, "", snakText(q)})
			}
		}
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func snakText(s wikibase.Snak) string {
	if s.SnakType != wikibase.SnakValue {
		return pterm.Gray("<" + s.SnakType + ">")
	}
	v, err := s.Value()
	if err != nil {
		return pterm.Red(firstLine(err.Error()))
	}
	return v.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
