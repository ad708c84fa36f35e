package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ppiankov/tenantspectre/internal/report"
)

func printStatus(format string, args ...interface{}) {
	slog.Info(fmt.Sprintf(format, args...))
}

// enhanceError enhances an error with additional context and helpful suggestions
func enhanceError(operation string, err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "user agent") {
		return fmt.Errorf("%s failed: Invalid User-Agent.\n"+
			"Solutions:\n"+
			"  - Provide a non-empty --user-agent value\n"+
			"  - Remove control characters and non-ASCII text from the value\n"+
			"Original error: %w", operation, err)
	}

	if strings.Contains(errMsg, "no such host") || strings.Contains(errMsg, "connection refused") {
		return fmt.Errorf("%s failed: Network unreachable.\n"+
			"Solutions:\n"+
			"  - Check outbound connectivity and proxy settings\n"+
			"  - Try a different resolver with --dns-server\n"+
			"Original error: %w", operation, err)
	}

	if strings.Contains(errMsg, "permission denied") {
		return fmt.Errorf("%s failed: Permission denied.\n"+
			"Solutions:\n"+
			"  - Check the --output path is writable\n"+
			"Original error: %w", operation, err)
	}

	// Default error with context
	return fmt.Errorf("%s failed: %w", operation, err)
}

func selectReporter(format string, writer io.Writer) (report.Reporter, error) {
	switch format {
	case "json":
		return report.NewJSONReporter(writer), nil
	case "sarif":
		return report.NewSARIFReporter(writer), nil
	case "spectre":
		return report.NewSpectreHubReporter(writer), nil
	case "text":
		return report.NewTextReporter(writer), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: text, json, sarif, spectre)", format)
	}
}
