package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ogonzalezm/tributo/internal/domain"
)

// Formatter renders a declaration result into a byte stream.
type Formatter interface {
	Name() string
	Format(result *domain.DeclarationResult) ([]byte, error)
}

// ByName returns the formatter registered under the given name.
func ByName(name string) (Formatter, error) {
	switch name {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", name)
	}
}

// FormatCurrency renders a peso amount with thousands separators.
func FormatCurrency(v decimal.Decimal) string {
	whole := v.Round(0)
	s := whole.StringFixed(0)

	negative := false
	if len(s) > 0 && s[0] == '-' {
		negative = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}

	prefix := "$"
	if negative {
		prefix = "-$"
	}
	return prefix + string(out)
}
