package extract

import "strings"

// Remplacements littéraux appliqués dans cet ordre : les derniers agissent sur
// le résultat des premiers, ne pas réordonner.
var headerReplacements = [][2]string{
	{":", ""},
	{" - ", "_"},
	{"|", ""},
	{"?", ""},
	{"/", "_"},
	{"-", "_"},
	{"Screening Question Answer", ""},
	{"National", "kf"},
	{"New Jersey  Miami", "taf"},
	{"New Jersey, Miami", "taf"},
	{"New Jersey", "nj"},
	{"Miami", "mia"},
}

// NormalizeHeader nettoie un nom de colonne : substitutions littérales, trim,
// espaces en underscores, puis minuscules
func NormalizeHeader(name string) string {
	s := name
	for _, r := range headerReplacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "__", "_")
	return strings.ToLower(s)
}

func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}
