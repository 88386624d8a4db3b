package output

import (
	"encoding/json"

	"github.com/ogonzalezm/tributo/internal/domain"
)

// JSONFormatter renders the result as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *domain.DeclarationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
