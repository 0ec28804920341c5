package report

import (
	"encoding/json"
	"os"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// generateJSON generates a JSON report
func (g *Generator) generateJSON(report *models.JobReport, outputFile string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
