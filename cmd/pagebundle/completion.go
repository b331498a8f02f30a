package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // free value, nothing to complete
	flagBool
	flagEnum // has predefined values
	flagFile // file, optionally filtered by extension
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --css-engine
	Short  string   // -c (empty if none)
	Type   flagType // completion type
	Desc   string   // help text
	Values []string // enum values
	Exts   []string // file extensions without dot, empty = any file
}

// completionMeta holds completion-specific metadata for flags.
// Names, shorthands and descriptions come from the FlagSet.
type completionMeta struct {
	Values []string
	Exts   []string
	IsFile bool
	IsDir  bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"css-engine": {Values: []string{"yui", "builtin"}},
	"completion": {Values: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}},

	"config":         {IsFile: true, Exts: []string{"yaml", "yml"}},
	"node":           {IsFile: true},
	"java":           {IsFile: true},
	"compressor-jar": {IsFile: true, Exts: []string{"jar"}},

	"css-out": {IsDir: true},
}

// completionFlags returns the flag definitions of the pagebundle command.
func completionFlags() []flagDef {
	return extractFlagsFromFlagSet(newFlagSet(&bundleFlags{}))
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.IsFile:
				fd.Type = flagFile
				fd.Exts = meta.Exts
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// GenerateCompletion writes a shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	flags := completionFlags()

	var script string
	switch shell {
	case ShellBash:
		script = generateBash(flags)
	case ShellZsh:
		script = generateZsh(flags)
	case ShellFish:
		script = generateFish(flags)
	case ShellPowerShell:
		script = generatePowerShell(flags)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

// flagNames returns "--long" and "-s" forms of a flag.
func flagNames(f flagDef) []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBash(flags []flagDef) string {
	var b strings.Builder
	var all []string

	b.WriteString("# bash completion for pagebundle\n")
	b.WriteString("_pagebundle_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"$prev\" in\n")

	for _, f := range flags {
		all = append(all, flagNames(f)...)
		if f.Type == flagBool {
			continue
		}

		fmt.Fprintf(&b, "        %s)\n", strings.Join(flagNames(f), "|"))
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
		case flagFile:
			b.WriteString("            compopt -o filenames 2>/dev/null\n")
			b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		case flagDir:
			b.WriteString("            compopt -o filenames 2>/dev/null\n")
			b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		default:
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(all, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    compopt -o filenames 2>/dev/null\n")
	b.WriteString("    COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _pagebundle_completions pagebundle\n")

	return b.String()
}

func generateZsh(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("#compdef pagebundle\n\n")
	b.WriteString("_pagebundle() {\n")
	b.WriteString("    _arguments -s \\\n")

	for _, f := range flags {
		desc := "[" + zshEscape(f.Desc) + "]"

		var action string
		switch f.Type {
		case flagBool:
		case flagEnum:
			action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
		case flagFile:
			action = ":file:_files"
			if len(f.Exts) > 0 {
				action += ` -g "*.(` + strings.Join(f.Exts, "|") + `)"`
			}
		case flagDir:
			action = ":directory:_files -/"
		default:
			action = ":value: "
		}

		if f.Short != "" {
			fmt.Fprintf(&b, "        '(-%s --%s)'{-%s,--%s}'%s%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
		} else {
			fmt.Fprintf(&b, "        '--%s%s%s' \\\n", f.Long, desc, action)
		}
	}

	b.WriteString("        '*:file:_files'\n")
	b.WriteString("}\n\n")
	b.WriteString("_pagebundle \"$@\"\n")

	return b.String()
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

func generateFish(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for pagebundle\n")
	b.WriteString("complete -c pagebundle -f\n")
	b.WriteString("complete -c pagebundle -n 'not string match -q -- \"-*\" (commandline -ct)' -F\n")

	for _, f := range flags {
		b.WriteString("complete -c pagebundle")
		if f.Short != "" {
			b.WriteString(" -s " + f.Short)
		}
		b.WriteString(" -l " + f.Long)

		switch f.Type {
		case flagBool:
		case flagEnum:
			fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
		case flagFile:
			b.WriteString(" -r -F")
		case flagDir:
			b.WriteString(" -x -a '(__fish_complete_directories)'")
		default:
			b.WriteString(" -x")
		}

		fmt.Fprintf(&b, " -d '%s'\n", strings.ReplaceAll(f.Desc, "'", `\'`))
	}

	return b.String()
}

func generatePowerShell(flags []flagDef) string {
	var b strings.Builder
	quote := func(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }

	b.WriteString("# PowerShell completion for pagebundle\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName pagebundle -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $tokens = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $prev = if ($wordToComplete) { $tokens[-2] } else { $tokens[-1] }\n\n")
	b.WriteString("    $values = switch ($prev) {\n")
	for _, f := range flags {
		if f.Type != flagEnum {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = quote(v)
		}
		fmt.Fprintf(&b, "        %s { @(%s) }\n", quote("--"+f.Long), strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n")
	b.WriteString("    if ($values) {\n")
	b.WriteString("        $values | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = @(\n")
	for _, f := range flags {
		for _, name := range flagNames(f) {
			fmt.Fprintf(&b, "        @{ Name = %s; Desc = %s }\n", quote(name), quote(f.Desc))
		}
	}
	b.WriteString("    )\n")
	b.WriteString("    $flags | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Desc)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	return b.String()
}
