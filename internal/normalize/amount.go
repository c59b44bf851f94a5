package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount converts a raw numeric value into a float64.
// Anything that cannot be read as a number yields 0.
func Amount(raw any) float64 {
	return amount(raw, 0)
}

// AbsAmount is Amount with the sign dropped.
func AbsAmount(raw any) float64 {
	return math.Abs(Amount(raw))
}

func amount(raw any, depth int) float64 {
	if depth > maxDepth {
		return 0
	}

	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return amountFromString(v.String(), true)
	case string:
		return amountFromString(v, false)
	case []byte:
		return amountFromString(string(v), true)
	}

	if inner, ok := unbox(raw); ok {
		return amount(inner, depth+1)
	}

	return 0
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

var (
	numberRe     = regexp.MustCompile(`^\d+(?:[.,]\d+)*$`)
	scientificRe = regexp.MustCompile(`^\d+(?:\.\d+)?[eE][-+]?\d+$`)
	// ptGroupRe is a single dotted group that pt-BR reads as thousands: "1.000", "12.500".
	ptGroupRe = regexp.MustCompile(`^[1-9]\d{0,2}\.\d{3}$`)
)

// amountFromString reads plain numbers ("1234.5") and pt-BR currency strings
// ("R$ 1.234,56", "(1.234,56)", "-1.234"). Only a currency marker, one sign,
// enclosing parentheses and whitespace may surround the digits; any other text
// makes the value unreadable. plainDecimal reads a lone "." as the decimal
// point, which is how the driver encodes DECIMAL columns.
func amountFromString(s string, plainDecimal bool) float64 {
	body, negative, ok := stripDecorations(s)
	if !ok {
		return 0
	}

	var f float64
	switch {
	case scientificRe.MatchString(body):
		v, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return 0
		}
		f = v
	case numberRe.MatchString(body):
		v, ok := parseSeparated(body, plainDecimal)
		if !ok {
			return 0
		}
		f = v
	default:
		return 0
	}

	if negative {
		f = -f
	}

	return finite(f)
}

// stripDecorations removes whitespace (NBSP included), enclosing parentheses,
// one currency marker and one leading or trailing sign.
func stripDecorations(s string) (body string, negative, ok bool) {
	s = strings.TrimSpace(s)

	parens := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if parens {
		s = s[1 : len(s)-1]
	}

	signs, markers := 0, 0
front:
	for {
		s = strings.TrimSpace(s)
		switch {
		case strings.HasPrefix(s, "-"), strings.HasPrefix(s, "+"):
			negative = s[0] == '-'
			signs++
			s = s[1:]
		case strings.HasPrefix(s, "R$"), strings.HasPrefix(s, "r$"):
			markers++
			s = s[2:]
		case strings.HasPrefix(s, "$"):
			markers++
			s = s[1:]
		default:
			break front
		}
	}

	if strings.HasSuffix(s, "-") || strings.HasSuffix(s, "+") {
		negative = strings.HasSuffix(s, "-")
		signs++
		s = strings.TrimSpace(s[:len(s)-1])
	}

	if signs > 1 || markers > 1 || (parens && signs > 0) {
		return "", false, false
	}

	return s, negative || parens, true
}

// parseSeparated resolves "." and "," into thousands and decimal separators.
// When both appear the last one is the decimal separator. Thousands groups
// after the first must have exactly three digits.
func parseSeparated(s string, plainDecimal bool) (float64, bool) {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			return grouped(s, ".", ",")
		}
		return grouped(s, ",", ".")
	case commas == 1:
		return grouped(s, "", ",")
	case commas > 1:
		return grouped(s, ",", "")
	case dots > 1:
		return grouped(s, ".", "")
	case dots == 1 && !plainDecimal && ptGroupRe.MatchString(s):
		return grouped(s, ".", "")
	default:
		return grouped(s, "", ".")
	}
}

func grouped(s, thousands, decimalSep string) (float64, bool) {
	intPart, frac := s, ""
	if decimalSep != "" {
		if i := strings.LastIndex(s, decimalSep); i >= 0 {
			intPart, frac = s[:i], s[i+1:]
		}
	}

	if thousands != "" {
		if strings.Contains(frac, thousands) {
			return 0, false
		}

		groups := strings.Split(intPart, thousands)
		if len(groups[0]) > 3 {
			return 0, false
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return 0, false
			}
		}
		intPart = strings.Join(groups, "")
	}

	num := intPart
	if frac != "" {
		num += "." + frac
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}
