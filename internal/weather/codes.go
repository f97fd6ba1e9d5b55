// Package weather resolves place names and fetches normalized daily
// forecasts from the Open-Meteo APIs.
package weather

// wmoDescriptions maps WMO weather codes to Spanish descriptions. Codes
// outside the table describe as the empty string rather than failing.
var wmoDescriptions = map[int]string{
	0:  "despejado/soleado",
	1:  "mayormente despejado",
	2:  "parcialmente nublado",
	3:  "nublado",
	45: "niebla",
	48: "niebla escarchada",
	51: "llovizna ligera",
	53: "llovizna moderada",
	55: "llovizna densa",
	56: "llovizna helada ligera",
	57: "llovizna helada densa",
	61: "lluvia ligera",
	63: "lluvia moderada",
	65: "lluvia intensa",
	66: "lluvia helada ligera",
	67: "lluvia helada intensa",
	71: "nieve ligera",
	73: "nieve moderada",
	75: "nieve intensa",
	77: "granizo",
	80: "chubascos ligeros",
	81: "chubascos moderados",
	82: "chubascos fuertes",
	85: "chubascos de nieve ligeros",
	86: "chubascos de nieve fuertes",
	95: "tormenta",
	96: "tormenta con granizo ligera",
	99: "tormenta con granizo fuerte",
}

// cloudyCodes is the cloud/fog set used by the overview classification.
var cloudyCodes = map[int]bool{2: true, 3: true, 45: true, 48: true}

// clearCodes is the clear-sky set used for outdoor planning hints.
var clearCodes = map[int]bool{0: true, 1: true}

// Describe returns the localized description for a WMO weather code, or ""
// for unknown codes.
func Describe(code int) string {
	return wmoDescriptions[code]
}

// IsClear reports whether the code belongs to the clear-sky set.
func IsClear(code int) bool {
	return clearCodes[code]
}
