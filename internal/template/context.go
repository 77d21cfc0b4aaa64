package template

import (
	"os"
	"runtime"
)

// Keys available to every script command.
const (
	KeyOS         = "OS"
	KeyArch       = "Arch"
	KeyHomeDir    = "HomeDir"
	KeyBrewPrefix = "BrewPrefix"
	KeyToolID     = "ToolID"
	KeyToolName   = "ToolName"
)

// HostContext describes the machine the commands run on.
func HostContext() map[string]interface{} {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return map[string]interface{}{
		KeyOS:         runtime.GOOS,
		KeyArch:       runtime.GOARCH,
		KeyHomeDir:    home,
		KeyBrewPrefix: BrewPrefix(runtime.GOOS, runtime.GOARCH),
	}
}

// ToolContext describes the tool being installed.
func ToolContext(id, name string) map[string]interface{} {
	return map[string]interface{}{
		KeyToolID:   id,
		KeyToolName: name,
	}
}

// BrewPrefix returns Homebrew's default install prefix for a platform.
func BrewPrefix(goos, goarch string) string {
	switch {
	case goos == "darwin" && goarch == "arm64":
		return "/opt/homebrew"
	case goos == "linux":
		return "/home/linuxbrew/.linuxbrew"
	default:
		return "/usr/local"
	}
}

// MergeContexts merges multiple contexts into a single context
// Later contexts override values from earlier contexts
func MergeContexts(contexts ...map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for _, ctx := range contexts {
		for key, value := range ctx {
			result[key] = value
		}
	}

	return result
}
