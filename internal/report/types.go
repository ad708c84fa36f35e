package report

import (
	"time"

	"github.com/ppiankov/tenantspectre/internal/analyzer"
	"github.com/ppiankov/tenantspectre/internal/recon"
)

// Reporter interface for different report formats
type Reporter interface {
	Generate(data Data) error
}

// Data contains all report data
type Data struct {
	Tool      string           `json:"tool"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Config    Config           `json:"config"`
	Results   *recon.Report    `json:"results"`
	Analysis  *analyzer.Result `json:"analysis,omitempty"`
}

// Config contains scan configuration
type Config struct {
	Domain string `json:"domain"`
	Cloud  string `json:"cloud"`
}
