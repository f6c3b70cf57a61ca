package extract

import "testing"

func TestPhonesFromText(t *testing.T) {
	c := Content{Text: "Contact us at sales@example-biz.com or (212) 555-0134"}
	got := Phones(c)
	if len(got) != 1 || got[0] != "+12125550134" {
		t.Fatalf("unexpected phones: %#v", got)
	}
}

func TestPhonesIgnoreDigitsInsideAssetPaths(t *testing.T) {
	c := Content{
		Markup: `<img src="/assets/2050a7ae-41c2-4d11-b984-0956367382cf.png">` +
			`<link href="/static/css/app.8774551234.css" rel="stylesheet">` +
			`<div style="background:url(/img/4155551234.jpg)"></div>` +
			`<a href="/catalog?sku=2125559876">item</a>`,
	}
	if got := Phones(c); len(got) != 0 {
		t.Fatalf("expected no phones from asset markup, got %#v", got)
	}
}

func TestPhonesFromTelHrefSurviveScrub(t *testing.T) {
	c := Content{Markup: `<a href="tel:+14155552671">Call</a>`}
	got := Phones(c)
	if len(got) != 1 || got[0] != "+14155552671" {
		t.Fatalf("unexpected phones: %#v", got)
	}
}

func TestPhonesInternationalAndTollFree(t *testing.T) {
	c := Content{Text: "Reach us on +44 20 7183 8750 or 1-888-234-5678."}
	got := Phones(c)
	want := map[string]bool{"+442071838750": true, "+18882345678": true}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected phone %q", p)
		}
		delete(want, p)
	}
	if len(want) != 0 {
		t.Fatalf("missing phones %#v in %#v", want, got)
	}
}

func TestPhonesDeduplicateAcrossFormats(t *testing.T) {
	c := Content{Text: "(415) 555-2671 or 415-555-2671 or 1-415-555-2671"}
	got := Phones(c)
	if len(got) != 1 || got[0] != "+14155552671" {
		t.Fatalf("unexpected phones: %#v", got)
	}
}
