package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/octobees/leads-pipeline/internal/entity"
)

// Tables lifts every HTML table out of the markup into header+rows form.
// Tables without any cell content are skipped.
func Tables(c Content) []entity.TableData {
	if c.Markup == "" {
		return nil
	}
	doc, err := c.doc()
	if err != nil {
		return nil
	}

	var tables []entity.TableData
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var data entity.TableData
		table.Find("th").Each(func(_ int, th *goquery.Selection) {
			data.Headers = append(data.Headers, cellText(th))
		})
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				row = append(row, cellText(td))
			})
			if len(row) > 0 {
				data.Rows = append(data.Rows, row)
			}
		})
		if len(data.Headers) > 0 || len(data.Rows) > 0 {
			tables = append(tables, data)
		}
	})
	return tables
}

func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
