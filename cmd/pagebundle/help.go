package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pagebundle [flags] <input.html> <output.html> <minifier> [path-from-output-to-input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bundle the scripts and minify the stylesheets of a static page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input.html                 Source document, next to its js/ and css/ directories")
	fmt.Fprintln(w, "  output.html                Rewritten document (must differ from input)")
	fmt.Fprintln(w, "  minifier                   Script minifier run as \"node <minifier> <bundle>\"")
	fmt.Fprintln(w, "  path-from-output-to-input  Prefix for rewritten asset references (default: none)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --scripts-dir <name>  Scripts directory name (default: js)")
	fmt.Fprintln(w, "      --styles-dir <name>   Styles directory name (default: css)")
	fmt.Fprintln(w, "      --bundle-name <name>  Combined script file name (default: min.js)")
	fmt.Fprintln(w, "      --keep-preminified    Copy min.js script tags to the output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stylesheets:")
	fmt.Fprintln(w, "      --css-engine <s>      Engine: yui (default), builtin")
	fmt.Fprintln(w, "      --css-out <dir>       Directory for minified stylesheets (default: .)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tools:")
	fmt.Fprintln(w, "      --node <path>         Node runtime (default: node)")
	fmt.Fprintln(w, "      --java <path>         Java runtime (default: java)")
	fmt.Fprintln(w, "      --compressor-jar <p>  YUI compressor jar (default: yuicompressor-2.4.8.jar)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration and exit")
	fmt.Fprintln(w, "      --doctor              Check tools and environment (--json for JSON)")
	fmt.Fprintln(w, "      --completion <shell>  Print a completion script (bash, zsh, fish, powershell)")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PAGEBUNDLE_CONFIG, PAGEBUNDLE_NODE, PAGEBUNDLE_JAVA, PAGEBUNDLE_COMPRESSOR_JAR,")
	fmt.Fprintln(w, "  PAGEBUNDLE_CSS_ENGINE, PAGEBUNDLE_CSS_OUTPUT_DIR (also read from ./.env)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general error, 2 usage, 3 missing or unwritable file, 4 tool failure")
}
