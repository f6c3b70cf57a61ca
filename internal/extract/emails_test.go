package extract

import "testing"

func TestEmailsFromText(t *testing.T) {
	c := Content{Text: "Contact us at sales@example-biz.com or (212) 555-0134"}
	got := Emails(c)
	if len(got) != 1 || got[0] != "sales@example-biz.com" {
		t.Fatalf("unexpected emails: %#v", got)
	}
}

func TestEmailsFromMailtoHref(t *testing.T) {
	c := Content{Markup: `<a href="mailto:Info@Acme-Plumbing.com?subject=hi">Email us</a>`}
	got := Emails(c)
	if len(got) != 1 || got[0] != "info@acme-plumbing.com" {
		t.Fatalf("unexpected emails: %#v", got)
	}
}

func TestEmailsDropPlaceholderAndImageMatches(t *testing.T) {
	c := Content{
		Text:   "user@example.com and icon@2x.png are not contacts, real@acme.io is",
		Markup: `<img src="logo@3x.jpg"> <span>errors@sentry.wixpress.com</span>`,
	}
	got := Emails(c)
	if len(got) != 1 || got[0] != "real@acme.io" {
		t.Fatalf("unexpected emails: %#v", got)
	}
}

func TestEmailsDeduplicateCaseInsensitive(t *testing.T) {
	c := Content{Text: "Sales@Acme.com sales@acme.com"}
	got := Emails(c)
	if len(got) != 1 || got[0] != "sales@acme.com" {
		t.Fatalf("unexpected emails: %#v", got)
	}
}
