package report

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/IvanShishkin/ngenctl/pkg/models"
)

// generateYAML generates a YAML report
func (g *Generator) generateYAML(report *models.JobReport, outputFile string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
