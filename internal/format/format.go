// Package format applies the input-time display masks used by the
// registration forms. Masked values are stored as formatted strings.
package format

import (
	"fmt"
	"strings"
)

// CPF formats a national taxpayer id as XXX.XXX.XXX-XX.
func CPF(v string) string {
	d := Digits(v)
	if len(d) > 11 {
		d = d[:11]
	}
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// RG formats an identity card number as XX.XXX.XXX-X. The check digit
// may be the letter X.
func RG(v string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(v) {
		if (r >= '0' && r <= '9') || r == 'X' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) > 9 {
		d = d[:9]
	}
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 5:
		return d[:2] + "." + d[2:]
	case len(d) <= 8:
		return d[:2] + "." + d[2:5] + "." + d[5:]
	default:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "-" + d[8:]
	}
}

// Phone formats a phone number as (XX) XXXXX-XXXX or (XX) XXXX-XXXX.
func Phone(v string) string {
	d := Digits(v)
	if len(d) > 11 {
		d = d[:11]
	}
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case len(d) <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// Currency formats an amount typed in centavos as R$ 1.234,56. Values
// already carrying the prefix pass through re-normalized.
func Currency(v string) string {
	d := strings.TrimLeft(Digits(v), "0")
	if d == "" {
		return ""
	}
	for len(d) < 3 {
		d = "0" + d
	}
	whole, cents := d[:len(d)-2], d[len(d)-2:]
	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)
	return fmt.Sprintf("R$ %s,%s", strings.Join(groups, "."), cents)
}

// Digits strips everything but 0-9.
func Digits(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
