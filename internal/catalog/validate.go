package catalog

import (
	"fmt"
	"strings"

	"devenv/internal/config"
)

// Validate checks that t is well-formed. All problems are reported together
// as config.ValidationErrors.
func Validate(t ToolTemplate) error {
	var errs config.ValidationErrors

	errs.AddErr("id", config.ValidateRequired("id", t.ID, "tool template"))
	errs.AddErr("name", config.ValidateRequired("name", t.Name, "tool template"))
	errs.AddErr("executable", config.ValidateRequired("executable", t.Executable, "tool template"))

	if strings.ContainsAny(t.Executable, `/\`) {
		errs.Add("executable", "must be a command name, not a path", t.Executable)
	}
	if t.VersionParser != "" {
		errs.AddErr("versionParser", config.ValidateOneOf("versionParser", t.VersionParser, VersionParsers))
	}

	for i, cf := range t.ConfigFiles {
		if strings.TrimSpace(cf.Path) == "" {
			errs.Add(fmt.Sprintf("configFiles[%d].path", i), "cannot be empty")
		}
	}
	for i, dep := range t.Dependencies {
		if strings.TrimSpace(dep) == "" {
			errs.Add(fmt.Sprintf("dependencies[%d]", i), "cannot be empty")
		}
	}
	for i, m := range t.InstallMethods {
		validateInstallMethod(&errs, fmt.Sprintf("installMethods[%d]", i), m)
	}

	return errs.ErrOrNil()
}

func validateInstallMethod(errs *config.ValidationErrors, field string, m InstallMethod) {
	switch m.Type {
	case MethodBrew:
		if (m.BrewCaskName == "") == (m.BrewFormulaName == "") {
			errs.Add(field, "brew method needs exactly one of brewCaskName or brewFormulaName")
		}
	case MethodScript:
		if len(m.ScriptCommands) == 0 {
			errs.Add(field+".scriptCommands", "must have at least one command")
		}
		for i, cmd := range m.ScriptCommands {
			if strings.TrimSpace(cmd) == "" {
				errs.Add(fmt.Sprintf("%s.scriptCommands[%d]", field, i), "cannot be empty")
			}
		}
	default:
		errs.AddErr(field+".type", config.ValidateOneOf(field+".type", m.Type, []string{MethodBrew, MethodScript}))
	}
}

// ValidateCustom validates a user-supplied template, which additionally may
// not reuse a built-in id.
func ValidateCustom(t ToolTemplate) error {
	if IsBuiltin(t.ID) {
		return fmt.Errorf("%w: %s", ErrBuiltinTemplate, t.ID)
	}
	return config.FormatValidationError("custom tool", t.ID, Validate(t))
}
