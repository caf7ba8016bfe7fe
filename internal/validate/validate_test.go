package validate

import "testing"

func TestFormFields(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) (string, bool)
		in   string
		ok   bool
	}{
		{"zip", ZIP, " 2000 ", true},
		{"zip five digits", ZIP, "20000", false},
		{"email", Email, "ann@example.com", true},
		{"email no tld", Email, "ann@example", false},
		{"phone", Phone, "+61 (2) 9999-0000", true},
		{"phone letters", Phone, "call me", false},
		{"phone too short", Phone, "123", false},
		{"q", Q, "coffee maker", true},
		{"q markup", Q, "<b>", false},
		{"name", Name, " Ann ", true},
		{"name blank", Name, "   ", false},
		{"price", Price, "12.50", true},
		{"price negative", Price, "-1", false},
		{"rating blank", Rating, "", true},
		{"rating high", Rating, "5.5", false},
		{"image blank", ImageURL, "", true},
		{"image https", ImageURL, "https://img.example.com/a.png", true},
		{"image relative", ImageURL, "/a.png", false},
		{"image scheme", ImageURL, "javascript:alert(1)", false},
	}
	for _, tc := range cases {
		if _, ok := tc.fn(tc.in); ok != tc.ok {
			t.Fatalf("%s(%q) ok=%v, want %v", tc.name, tc.in, ok, tc.ok)
		}
	}
}

func TestIDPasswordTheme(t *testing.T) {
	if id, ok := ID(" 7 "); !ok || id != 7 {
		t.Fatalf("ID(7) = %d %v", id, ok)
	}
	for _, bad := range []string{"0", "-3", "x", "1.5"} {
		if _, ok := ID(bad); ok {
			t.Fatalf("ID(%q) accepted", bad)
		}
	}
	if Password("short") || !Password("secret1") {
		t.Fatal("password length window wrong")
	}
	if th, ok := Theme(" Dark "); !ok || th != "dark" {
		t.Fatalf("Theme(Dark) = %q %v", th, ok)
	}
	if _, ok := Theme("blue"); ok {
		t.Fatal("blue accepted")
	}
}
