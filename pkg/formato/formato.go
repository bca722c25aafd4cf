// Package formato holds the display and input masks used by the forms and
// reports: CPF, CNPJ, celular, decimal input, tree age and QR codes.
package formato

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Digits drops every non-digit rune. CPF and CNPJ are always compared
// through it.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCNPJ masks a partial or complete CNPJ as 00.000.000/0000-00.
func FormatCNPJ(cnpj string) string {
	d := Digits(cnpj)
	switch {
	case len(d) > 12:
		return mask(d, []int{2, 3, 3, 4, 2}, []string{".", ".", "/", "-"})
	case len(d) > 8:
		return mask(d, []int{1, 3, 3, 3}, []string{".", ".", "/"})
	case len(d) > 5:
		return mask(d, []int{2, 3, 3}, []string{".", "."})
	case len(d) > 2:
		return mask(d, []int{2, 2}, []string{"."})
	}
	return d
}

// FormatCPF masks a partial or complete CPF as 000.000.000-00.
func FormatCPF(cpf string) string {
	d := Digits(cpf)
	switch {
	case len(d) > 9:
		return mask(d, []int{3, 3, 3, 2}, []string{".", ".", "-"})
	case len(d) > 6:
		return mask(d, []int{3, 3, 3}, []string{".", "."})
	case len(d) > 3:
		return mask(d, []int{3, 3}, []string{"."})
	}
	return d
}

// FormatCelular masks a phone as (00) 00000-0000 or (00) 0000-0000.
func FormatCelular(celular string) string {
	d := Digits(celular)
	switch {
	case len(d) > 10:
		return mask(d, []int{2, 5, 4}, []string{") ", "-"}, "(")
	case len(d) > 6:
		return mask(d, []int{2, 4, 4}, []string{") ", "-"}, "(")
	case len(d) > 2:
		return mask(d, []int{2, 5}, []string{") "}, "(")
	}
	return d
}

// mask splits d into groups of the given widths and joins them with seps.
// Digits past the last group are appended unchanged, like the input masks
// in the forms do.
func mask(d string, widths []int, seps []string, prefix ...string) string {
	var b strings.Builder
	for _, p := range prefix {
		b.WriteString(p)
	}
	pos := 0
	for i, w := range widths {
		if pos >= len(d) {
			break
		}
		end := pos + w
		if end > len(d) {
			end = len(d)
		}
		if i > 0 {
			b.WriteString(seps[i-1])
		}
		b.WriteString(d[pos:end])
		pos = end
	}
	b.WriteString(d[pos:])
	return b.String()
}

// dateLayouts accepted for planting dates: the form mask first, then ISO.
var dateLayouts = []string{"02/01/2006", "2006-01-02", time.RFC3339}

// ParseData parses a form date. ok is false for empty or unknown formats.
func ParseData(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IdadeArvore renders the age of a tree planted at dataPlantio as of now,
// e.g. "2 anos e 3 meses". Unparseable dates give "".
func IdadeArvore(dataPlantio string, now time.Time) string {
	plantio, ok := ParseData(dataPlantio)
	if !ok {
		return ""
	}
	diff := now.Sub(plantio)
	if diff < 0 {
		diff = -diff
	}
	dias := int((diff + 24*time.Hour - 1) / (24 * time.Hour))
	anos := dias / 365
	meses := (dias % 365) / 30

	if anos > 0 {
		out := plural(anos, "ano", "anos")
		if meses > 0 {
			out += " e " + plural(meses, "mês", "meses")
		}
		return out
	}
	return plural(meses, "mês", "meses")
}

func plural(n int, um, varios string) string {
	if n > 1 {
		return fmt.Sprintf("%d %s", n, varios)
	}
	return fmt.Sprintf("%d %s", n, um)
}

// GerarCodigoQR builds a QR payload from the first three letters of the
// species and location plus a millisecond timestamp.
func GerarCodigoQR(especie, localizacao string, now time.Time) string {
	return fmt.Sprintf("QR_%s_%s_%d", prefixo(especie, "PLA"), prefixo(localizacao, "LOC"), now.UnixMilli())
}

func prefixo(s, padrao string) string {
	r := []rune(s)
	if len(r) > 3 {
		r = r[:3]
	}
	out := strings.Map(unicode.ToUpper, string(r))
	if out == "" {
		return padrao
	}
	return out
}
