package settlement

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// numberSymbols are the digits and separators a locale uses for decimals
type numberSymbols struct {
	digits  [10]string
	group   string
	decimal string
}

var defaultSymbols = numberSymbols{
	digits:  [10]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
	group:   ",",
	decimal: ".",
}

// symbolSample holds every digit once in its integer part, highest first
var symbolSample = number.Decimal(9876543210.12, number.Scale(2))

// localeSymbols derives digits and separators by rendering symbolSample
// through x/text. Locales whose output cannot be read back use
// defaultSymbols.
func localeSymbols(lang language.Tag) numberSymbols {
	var (
		digits []rune
		seps   []string
		cur    []rune
	)
	for _, r := range message.NewPrinter(lang).Sprintf("%v", symbolSample) {
		if unicode.IsDigit(r) {
			if len(cur) > 0 {
				seps = append(seps, string(cur))
				cur = cur[:0]
			}
			digits = append(digits, r)
			continue
		}
		if len(digits) > 0 {
			cur = append(cur, r)
		}
	}
	if len(digits) != 12 || len(seps) < 2 {
		return defaultSymbols
	}

	var sym numberSymbols
	for i := 0; i < 10; i++ {
		sym.digits[9-i] = string(digits[i])
	}
	sym.group = seps[0]
	sym.decimal = seps[len(seps)-1]
	return sym
}

// FormatAmount renders an amount with two decimals and the separators of
// lang, e.g. 1,234.50 for English. Digits come from the exact decimal, so
// the result never drifts from the amount it displays.
func FormatAmount(amount decimal.Decimal, lang language.Tag) string {
	sym := localeSymbols(lang)

	fixed := amount.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	intPart, fracPart, _ := strings.Cut(strings.TrimPrefix(fixed, "-"), ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(sym.group)
		}
		b.WriteString(sym.digits[r-'0'])
	}
	b.WriteString(sym.decimal)
	for _, r := range fracPart {
		b.WriteString(sym.digits[r-'0'])
	}
	return b.String()
}

// ParseLanguage parses a BCP 47 tag such as an Accept-Language value,
// falling back to English.
func ParseLanguage(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	return tags[0]
}
