package accounts

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"fym/proj/internal/domain/models"
)

var csvHeader = []string{"Title", "Year", "Type", "Rating", "Watched", "Watched Date", "Notes"}

// csvCell keeps a spreadsheet from reading user text as a formula.
func csvCell(s string) string {
	if s != "" && strings.ContainsAny(s[:1], "=+-@\t\r") {
		return "'" + s
	}
	return s
}

// ExportWatchlistCSV writes the named list of acc as CSV. A missing list
// exports just the header row.
func ExportWatchlistCSV(w io.Writer, acc *models.Account, listName string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if list := acc.Watchlist(listNameOrDefault(listName)); list != nil {
		for _, it := range list.Items {
			rating := ""
			if it.Rating != nil {
				rating = strconv.Itoa(*it.Rating)
			}
			watched := "No"
			if it.Watched {
				watched = "Yes"
			}
			watchedDate := ""
			if it.WatchedAt != nil {
				watchedDate = it.WatchedAt.UTC().Format(time.RFC3339)
			}
			row := []string{csvCell(it.Title), csvCell(it.Year), csvCell(it.Type), rating, watched, watchedDate, csvCell(it.Notes)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
