package shared

import "strings"

// Region is a Brazilian federative unit.
type Region struct {
	Code string
	Name string
	// Of is the name with its contraction, as used in messages ("do Paraná").
	Of            string
	MinorsAllowed bool
}

// RestrictedRegion is the only unit whose companies may not link minors.
const RestrictedRegion = "PR"

var regions = map[string]Region{
	"RO": {Code: "RO", Name: "Rondônia", Of: "de Rondônia", MinorsAllowed: true},
	"AC": {Code: "AC", Name: "Acre", Of: "do Acre", MinorsAllowed: true},
	"AM": {Code: "AM", Name: "Amazonas", Of: "do Amazonas", MinorsAllowed: true},
	"RR": {Code: "RR", Name: "Roraima", Of: "de Roraima", MinorsAllowed: true},
	"PA": {Code: "PA", Name: "Pará", Of: "do Pará", MinorsAllowed: true},
	"AP": {Code: "AP", Name: "Amapá", Of: "do Amapá", MinorsAllowed: true},
	"TO": {Code: "TO", Name: "Tocantins", Of: "do Tocantins", MinorsAllowed: true},
	"MA": {Code: "MA", Name: "Maranhão", Of: "do Maranhão", MinorsAllowed: true},
	"PI": {Code: "PI", Name: "Piauí", Of: "do Piauí", MinorsAllowed: true},
	"CE": {Code: "CE", Name: "Ceará", Of: "do Ceará", MinorsAllowed: true},
	"RN": {Code: "RN", Name: "Rio Grande do Norte", Of: "do Rio Grande do Norte", MinorsAllowed: true},
	"PB": {Code: "PB", Name: "Paraíba", Of: "da Paraíba", MinorsAllowed: true},
	"PE": {Code: "PE", Name: "Pernambuco", Of: "de Pernambuco", MinorsAllowed: true},
	"AL": {Code: "AL", Name: "Alagoas", Of: "de Alagoas", MinorsAllowed: true},
	"SE": {Code: "SE", Name: "Sergipe", Of: "de Sergipe", MinorsAllowed: true},
	"BA": {Code: "BA", Name: "Bahia", Of: "da Bahia", MinorsAllowed: true},
	"MG": {Code: "MG", Name: "Minas Gerais", Of: "de Minas Gerais", MinorsAllowed: true},
	"ES": {Code: "ES", Name: "Espírito Santo", Of: "do Espírito Santo", MinorsAllowed: true},
	"RJ": {Code: "RJ", Name: "Rio de Janeiro", Of: "do Rio de Janeiro", MinorsAllowed: true},
	"SP": {Code: "SP", Name: "São Paulo", Of: "de São Paulo", MinorsAllowed: true},
	"PR": {Code: "PR", Name: "Paraná", Of: "do Paraná", MinorsAllowed: false},
	"SC": {Code: "SC", Name: "Santa Catarina", Of: "de Santa Catarina", MinorsAllowed: true},
	"RS": {Code: "RS", Name: "Rio Grande do Sul", Of: "do Rio Grande do Sul", MinorsAllowed: true},
	"MS": {Code: "MS", Name: "Mato Grosso do Sul", Of: "de Mato Grosso do Sul", MinorsAllowed: true},
	"MT": {Code: "MT", Name: "Mato Grosso", Of: "de Mato Grosso", MinorsAllowed: true},
	"GO": {Code: "GO", Name: "Goiás", Of: "de Goiás", MinorsAllowed: true},
	"DF": {Code: "DF", Name: "Distrito Federal", Of: "do Distrito Federal", MinorsAllowed: true},
}

// LookupRegion finds a unit by its two-letter code, ignoring case and spaces.
func LookupRegion(code string) (Region, bool) {
	r, ok := regions[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

// AllowsMinors reports whether companies in the unit may link suppliers under
// AdultAge. Unknown or empty codes are unrestricted.
func AllowsMinors(code string) bool {
	r, ok := LookupRegion(code)
	return !ok || r.MinorsAllowed
}
