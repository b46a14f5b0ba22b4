package format

import "testing"

func TestCPF(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"123", "123"},
		{"123456", "123.456"},
		{"123456789", "123.456.789"},
		{"12345678901", "123.456.789-01"},
		{"123.456.789-01", "123.456.789-01"},
		{"123456789012345", "123.456.789-01"},
		{"abc123def456", "123.456"},
	}
	for _, c := range cases {
		if got := CPF(c.in); got != c.want {
			t.Errorf("CPF(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRG(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"12", "12"},
		{"12345", "12.345"},
		{"12345678", "12.345.678"},
		{"123456789", "12.345.678-9"},
		{"12345678x", "12.345.678-X"},
		{"12.345.678-X", "12.345.678-X"},
	}
	for _, c := range cases {
		if got := RG(c.in); got != c.want {
			t.Errorf("RG(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"11", "11"},
		{"119876", "(11) 9876"},
		{"1198765432", "(11) 9876-5432"},
		{"11987654321", "(11) 98765-4321"},
		{"(11) 98765-4321", "(11) 98765-4321"},
	}
	for _, c := range cases {
		if got := Phone(c.in); got != c.want {
			t.Errorf("Phone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"0", ""},
		{"5", "R$ 0,05"},
		{"150", "R$ 1,50"},
		{"123456", "R$ 1.234,56"},
		{"123456789", "R$ 1.234.567,89"},
		{"R$ 1.234,56", "R$ 1.234,56"},
	}
	for _, c := range cases {
		if got := Currency(c.in); got != c.want {
			t.Errorf("Currency(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("a1b2c3"); got != "123" {
		t.Errorf("Digits = %q, want 123", got)
	}
}
