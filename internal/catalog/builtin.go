package catalog

func brewFormula(name string) []InstallMethod {
	return []InstallMethod{{Type: MethodBrew, BrewFormulaName: name}}
}

func brewCask(name string) []InstallMethod {
	return []InstallMethod{{Type: MethodBrew, BrewCaskName: name}}
}

func script(commands ...string) []InstallMethod {
	return []InstallMethod{{Type: MethodScript, ScriptCommands: commands}}
}

func configFiles(path, description string) []ConfigFileLocation {
	return []ConfigFileLocation{{Path: path, Description: description}}
}

// Builtins returns the templates shipped with devenv, in display order. Every
// call returns fresh copies.
func Builtins() []ToolTemplate {
	return []ToolTemplate{
		{
			ID: "node", Name: "Node.js", Executable: "node",
			ConfigFiles:    configFiles("~/.npmrc", "NPM configuration"),
			InstallMethods: brewFormula("node"),
		},
		{
			ID: "python", Name: "Python", Executable: "python3",
			VersionParser:  ParserStderr,
			ConfigFiles:    configFiles("~/.pythonrc", "Python configuration"),
			InstallMethods: brewFormula("python"),
		},
		{
			ID: "uv", Name: "uv", Executable: "uv",
			ConfigFiles:    configFiles("~/.config/uv/uv.toml", "uv configuration"),
			InstallMethods: brewFormula("uv"),
			Dependencies:   []string{"python"},
		},
		{
			ID: "n", Name: "n", Executable: "n",
			InstallMethods: brewFormula("n"),
			Dependencies:   []string{"node"},
		},
		{
			ID: "brew", Name: "Homebrew", Executable: "brew",
			InstallMethods: script(
				`NONINTERACTIVE=1 /bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`,
				`echo 'eval "$({{ .BrewPrefix }}/bin/brew shellenv)"' >> {{ .HomeDir }}/.zprofile`,
			),
		},
		{
			ID: "aerospace", Name: "AeroSpace", Executable: "aerospace",
			ConfigFiles:    configFiles("~/.config/aerospace/aerospace.toml", "AeroSpace configuration"),
			InstallMethods: []InstallMethod{{Type: MethodBrew, BrewCaskName: "aerospace", BrewTap: "nikitabobko/tap"}},
			Dependencies:   []string{"brew"},
		},
		{
			ID: "fish", Name: "Fish Shell", Executable: "fish",
			ConfigFiles:    configFiles("~/.config/fish/config.fish", "Fish shell configuration"),
			InstallMethods: brewFormula("fish"),
			Dependencies:   []string{"brew"},
		},
		{
			ID: "lazygit", Name: "LazyGit", Executable: "lazygit",
			ConfigFiles:    configFiles("~/.config/lazygit/config.yml", "LazyGit configuration"),
			InstallMethods: brewFormula("lazygit"),
			Dependencies:   []string{"brew"},
		},
		{
			ID: "nvim", Name: "Neovim", Executable: "nvim",
			ConfigFiles:    configFiles("~/.config/nvim/init.lua", "Neovim configuration"),
			InstallMethods: brewFormula("neovim"),
			Dependencies:   []string{"brew"},
		},
		{
			ID: "tmux", Name: "tmux", Executable: "tmux",
			VersionCommand: "-V",
			ConfigFiles:    configFiles("~/.tmux.conf", "tmux configuration"),
			InstallMethods: brewFormula("tmux"),
			Dependencies:   []string{"brew"},
		},
		{
			ID: "ccusage", Name: "ccusage", Executable: "ccusage",
			InstallMethods: script("npm install -g ccusage@latest"),
			Dependencies:   []string{"node"},
		},
		{
			ID: "codex", Name: "Codex", Executable: "codex",
			InstallMethods: script("npm install -g @openai/codex"),
			Dependencies:   []string{"node"},
		},
		{
			ID: "claude-code", Name: "Claude Code", Executable: "claude-code",
			InstallMethods: script("npm install -g @anthropic-ai/claude-code"),
			Dependencies:   []string{"node"},
		},
		{
			ID: "wezterm", Name: "WezTerm", Executable: "wezterm",
			ConfigFiles:    configFiles("~/.config/wezterm/wezterm.lua", "WezTerm configuration"),
			InstallMethods: brewCask("wezterm"),
			Dependencies:   []string{"brew"},
		},
		{
			ID: "claude", Name: "Claude CLI", Executable: "claude",
			InstallMethods: script("curl -fsSL https://claude.ai/install.sh | bash"),
		},
		{
			ID: "gemini", Name: "Gemini CLI", Executable: "gemini",
			InstallMethods: script("npm install -g @google/gemini-cli"),
			Dependencies:   []string{"node"},
		},
		{
			ID: "openspec", Name: "OpenSpec", Executable: "openspec",
			InstallMethods: script("npm install -g @fission-ai/openspec@latest"),
			Dependencies:   []string{"node"},
		},
		{
			ID: "inshellisense", Name: "Inshellisense", Executable: "inshellisense",
			InstallMethods: script("npm install -g @microsoft/inshellisense"),
			Dependencies:   []string{"node"},
		},
		{
			ID: "tree-sitter", Name: "Tree-sitter CLI", Executable: "tree-sitter",
			InstallMethods: script("npm install -g tree-sitter-cli"),
			Dependencies:   []string{"node"},
		},
	}
}

var builtinIDs = func() map[string]bool {
	ids := make(map[string]bool)
	for _, t := range Builtins() {
		ids[t.ID] = true
	}
	return ids
}()

// IsBuiltin reports whether id belongs to a shipped template.
func IsBuiltin(id string) bool {
	return builtinIDs[id]
}
