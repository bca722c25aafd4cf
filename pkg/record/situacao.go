package record

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cacau/entities"
)

var situacoes = map[string]string{
	"saudavel": entities.SituacaoSaudavel,
	"doente":   entities.SituacaoDoente,
	"praga":    entities.SituacaoPragas,
	"pragas":   entities.SituacaoPragas,
	"morto":    entities.SituacaoMorto,
	"morta":    entities.SituacaoMorto,
	"outro":    entities.SituacaoOutro,
	"outra":    entities.SituacaoOutro,
}

// Fold lower-cases s and strips accents, so "Saudável" and "saudavel"
// compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// CanonicalSituacao maps wizard values to the labels stored on records.
// Unknown text is kept as is.
func CanonicalSituacao(s string) string {
	if label, ok := situacoes[Fold(s)]; ok {
		return label
	}
	return s
}
