// Package prerequisites checks that required client tools are installed
// before any remote call is made.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the tools every workflow needs. The cloud CLI is
// the only hard dependency: key generation and the SSH transport are
// handled in-process.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "gcloud",
			Required:    true,
			Description: "Required for all compute resource operations",
			InstallURL:  "https://cloud.google.com/sdk/docs/install",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "ssh",
			Required:    false,
			Description: "Useful for manual access to the instance",
			InstallURL:  "https://www.openssh.com/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			// Try to get version (best effort)
			result.Version = getToolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDefault checks the default required tools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}

// CheckAll checks all tools (default + optional).
func CheckAll() *CheckResults {
	defaults := DefaultTools()
	optional := OptionalTools()
	all := make([]Tool, 0, len(defaults)+len(optional))
	all = append(all, defaults...)
	all = append(all, optional...)
	return Check(all)
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
