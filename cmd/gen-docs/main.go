package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fidget/internal/config"
)

// This small tool generates shell completions, a man page, and a starter
// tuning file based on the known flags. It does not depend on Cobra; it
// emits simple, robust completions for common shells and a minimal roff man
// page that mirrors --help contents.

const (
	appName        = "fidget"
	appDescription = "A human-motion mouse activity simulator with a status LED and terminal dashboard."
)

type flagDef struct {
	Short string
	Long  string
	Arg   string
	Desc  string
}

func main() {
	flags := []flagDef{
		{Short: "-d", Long: "--duration", Arg: "<string>", Desc: "How long to run (e.g., \"2h30m\" or \"150\")"},
		{Short: "", Long: "--until", Arg: "<string>", Desc: "Local clock time to stop at (e.g., \"22:00\" or \"10:30PM\")"},
		{Short: "", Long: "--seed", Arg: "<uint>", Desc: "Random seed; 0 derives one from the clock"},
		{Short: "", Long: "--tick", Arg: "<duration>", Desc: "Control loop tick interval (default 8ms)"},
		{Short: "", Long: "--config", Arg: "<path>", Desc: "Path to a tuning YAML file"},
		{Short: "", Long: "--stats", Arg: "", Desc: "Enable performance statistics"},
		{Short: "", Long: "--headless", Arg: "", Desc: "Run without the terminal UI, shell on stdin"},
		{Short: "", Long: "--dry-run", Arg: "", Desc: "Do not open a pointer device; discard motion"},
		{Short: "-v", Long: "--version", Arg: "", Desc: "Show version information"},
		{Short: "-h", Long: "--help", Arg: "", Desc: "Show help message"},
	}

	if err := writeCompletions(flags); err != nil {
		panic(err)
	}
	if err := writeMan(flags); err != nil {
		panic(err)
	}
	if err := writeTuningExample(); err != nil {
		panic(err)
	}
}

// writeTuningExample emits the default tuning as a starting point for the
// -config flag.
func writeTuningExample() error {
	raw, err := config.DefaultTuning().Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll("docs", 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join("docs", "tuning.yaml"), raw, 0o644)
}

func writeCompletions(flags []flagDef) error {
	base := filepath.Join("docs", "completions")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}

	// Bash
	var bash strings.Builder
	bash.WriteString("_" + appName + "() {\n")
	bash.WriteString("  local cur prev opts\n")
	bash.WriteString("  COMPREPLY=()\n")
	bash.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	var opts []string
	for _, f := range flags {
		if f.Short != "" {
			opts = append(opts, f.Short)
		}
		if f.Long != "" {
			opts = append(opts, f.Long)
		}
	}
	bash.WriteString("  opts=\"" + strings.Join(opts, " ") + "\"\n")
	bash.WriteString("  if [[ ${cur} == -* ]] ; then\n")
	bash.WriteString("    COMPREPLY=( $(compgen -W \"${opts}\" -- ${cur}) )\n")
	bash.WriteString("    return 0\n")
	bash.WriteString("  fi\n")
	bash.WriteString("}\n")
	bash.WriteString("complete -F _" + appName + " " + appName + "\n")
	if err := os.WriteFile(filepath.Join(base, appName+".bash"), []byte(bash.String()), 0o644); err != nil {
		return err
	}

	// Zsh
	var zsh strings.Builder
	zsh.WriteString("#compdef " + appName + "\n")
	zsh.WriteString("_arguments ")
	var parts []string
	for _, f := range flags {
		form := fmt.Sprintf("'%s[%s]%s'", zFlagName(f), f.Desc, zArgSuffix(f.Arg))
		parts = append(parts, form)
	}
	zsh.WriteString(strings.Join(parts, " ") + "\n")
	if err := os.WriteFile(filepath.Join(base, "_"+appName), []byte(zsh.String()), 0o644); err != nil {
		return err
	}

	// Fish
	var fish strings.Builder
	fish.WriteString("complete -c " + appName + " -f\n")
	for _, f := range flags {
		fish.WriteString(fishFlagLine(f))
	}
	if err := os.WriteFile(filepath.Join(base, appName+".fish"), []byte(fish.String()), 0o644); err != nil {
		return err
	}

	return nil
}

func zFlagName(f flagDef) string {
	if f.Arg != "" {
		// zsh requires = for options with arguments
		if f.Long != "" {
			return f.Long + "="
		}
		return f.Short + "="
	}
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

func zArgSuffix(arg string) string {
	if arg == "" {
		return ""
	}
	return ":value:" + strings.Trim(arg, "<>")
}

func fishFlagLine(f flagDef) string {
	var b strings.Builder
	b.WriteString("complete -c ")
	b.WriteString(appName)
	if f.Short != "" {
		b.WriteString(" -s ")
		b.WriteString(strings.TrimPrefix(f.Short, "-"))
	}
	if f.Long != "" {
		b.WriteString(" -l ")
		b.WriteString(strings.TrimPrefix(f.Long, "--"))
	}
	if f.Arg != "" {
		b.WriteString(" -r")
	} else {
		b.WriteString(" -f")
	}
	b.WriteString(" -d \"")
	b.WriteString(escapeDoubleQuotes(f.Desc))
	b.WriteString("\"\n")
	return b.String()
}

func escapeDoubleQuotes(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

func writeMan(flags []flagDef) error {
	if err := os.MkdirAll("man", 0o755); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(appName) + "\" \"1\" \"\" \"fidget\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + appName + " - " + appDescription + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + appName + "\n")
	b.WriteString("[\\-d|\\-\\-duration <string>] [\\-\\-until <string>] [\\-\\-seed <uint>] [\\-\\-tick <duration>] [\\-\\-config <path>] [\\-\\-stats] [\\-\\-headless] [\\-\\-dry\\-run] [\\-v|\\-\\-version] [\\-h|\\-\\-help]\\n")
	b.WriteString(".SH DESCRIPTION\n" + appDescription + "\n")
	b.WriteString(".SH OPTIONS\n")
	for _, f := range flags {
		names := f.Short
		if f.Long != "" {
			if names != "" {
				names += ", "
			}
			names += f.Long
		}
		if f.Arg != "" {
			names += " " + f.Arg
		}
		b.WriteString(".TP\n\fB" + names + "\fR\n" + f.Desc + "\n")
	}
	b.WriteString(".SH EXAMPLES\n")
	b.WriteString(".TP\n\fB" + appName + "\fR\nStart the interactive dashboard.\n")
	b.WriteString(".TP\n\fB" + appName + " -d 2h30m\fR\nSimulate activity for 2 hours 30 minutes.\n")
	b.WriteString(".TP\n\fB" + appName + " --until 22:00\fR\nSimulate activity until 10:00 PM.\n")
	b.WriteString(".TP\n\fB" + appName + " --headless --stats\fR\nRun without a dashboard, with stats reports on stdout.\n")
	return os.WriteFile(filepath.Join("man", appName+".1"), []byte(b.String()), 0o644)
}
