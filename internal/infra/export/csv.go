// Package export gera a planilha de leads para o dashboard.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xavierca1/leadgen/internal/entity"
)

var Columns = []string{
	"id", "business_name", "category", "city", "phone", "email", "website", "rating",
	"email_sent", "whatsapp_sent", "instagram_sent", "response_status", "extraction_date",
}

// LeadsFrame monta um DataFrame com uma linha por lead.
func LeadsFrame(leads []*entity.Lead) dataframe.DataFrame {
	ids := make([]int, len(leads))
	cols := make([][]string, len(Columns)-1)
	for i := range cols {
		cols[i] = make([]string, len(leads))
	}

	for i, l := range leads {
		ids[i] = int(l.ID)
		row := []string{
			l.BusinessName,
			str(l.Category),
			str(l.City),
			str(l.Phone),
			str(l.Email),
			str(l.Website),
			rating(l.Rating),
			strconv.FormatBool(l.EmailSent),
			strconv.FormatBool(l.WhatsAppSent),
			strconv.FormatBool(l.InstagramSent),
			l.ResponseStatus,
			l.ExtractionDate.UTC().Format(time.RFC3339),
		}
		for c, v := range row {
			cols[c][i] = v
		}
	}

	all := []series.Series{series.New(ids, series.Int, Columns[0])}
	for c, values := range cols {
		all = append(all, series.New(values, series.String, Columns[c+1]))
	}
	return dataframe.New(all...)
}

func WriteLeadsCSV(w io.Writer, leads []*entity.Lead) error {
	df := LeadsFrame(leads)
	if df.Err != nil {
		return fmt.Errorf("montar planilha: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("escrever csv: %w", err)
	}
	return nil
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}
