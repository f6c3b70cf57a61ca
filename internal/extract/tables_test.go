package extract

import "testing"

func TestTablesParseHeadersAndRows(t *testing.T) {
	c := Content{Markup: `
		<table>
			<tr><th>Service</th><th>Price</th></tr>
			<tr><td>Drain cleaning</td><td>$120</td></tr>
			<tr><td>Pipe repair</td><td>$250</td></tr>
		</table>`}
	got := Tables(c)
	if len(got) != 1 {
		t.Fatalf("expected one table, got %d", len(got))
	}
	if len(got[0].Headers) != 2 || got[0].Headers[0] != "Service" {
		t.Errorf("headers = %#v", got[0].Headers)
	}
	if len(got[0].Rows) != 2 || got[0].Rows[1][1] != "$250" {
		t.Errorf("rows = %#v", got[0].Rows)
	}
}

func TestTablesEmptyMarkup(t *testing.T) {
	if got := Tables(Content{Text: "no markup"}); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
}
