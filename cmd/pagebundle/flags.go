package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every mode.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset layout flags.
type assetFlags struct {
	scriptsDir      string
	stylesDir       string
	bundleName      string
	keepPreMinified bool
}

// styleFlags holds stylesheet compression flags.
type styleFlags struct {
	engine    string
	outputDir string
}

// toolFlags holds external tool locations.
type toolFlags struct {
	node          string
	java          string
	compressorJar string
}

// modeFlags select an action other than bundling.
type modeFlags struct {
	help        bool
	version     bool
	doctor      bool
	json        bool
	printConfig bool
	completion  string
}

// bundleFlags holds all flags of the pagebundle command.
type bundleFlags struct {
	common commonFlags
	assets assetFlags
	styles styleFlags
	tools  toolFlags
	mode   modeFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addAssetFlags adds asset layout flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.scriptsDir, "scripts-dir", "", "scripts directory name (default: js)")
	fs.StringVar(&f.stylesDir, "styles-dir", "", "styles directory name (default: css)")
	fs.StringVar(&f.bundleName, "bundle-name", "", "combined script file name (default: min.js)")
	fs.BoolVar(&f.keepPreMinified, "keep-preminified", false, "copy min.js script tags to the output")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.engine, "css-engine", "", "stylesheet engine: yui, builtin")
	fs.StringVar(&f.outputDir, "css-out", "", "directory for minified stylesheets (default: working directory)")
}

// addToolFlags adds external tool flags to a FlagSet.
func addToolFlags(fs *flag.FlagSet, f *toolFlags) {
	fs.StringVar(&f.node, "node", "", "node runtime for the minifier")
	fs.StringVar(&f.java, "java", "", "java runtime for the YUI compressor")
	fs.StringVar(&f.compressorJar, "compressor-jar", "", "YUI compressor jar path")
}

// addModeFlags adds mode selection flags to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVar(&f.doctor, "doctor", false, "check the tools and environment")
	fs.BoolVar(&f.json, "json", false, "with --doctor, print JSON")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.StringVar(&f.completion, "completion", "", "print a completion script: bash, zsh, fish, powershell")
}

// newFlagSet registers every flag of the pagebundle command into f.
// Shared by parseFlags and completion generation.
func newFlagSet(f *bundleFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("pagebundle", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addStyleFlags(fs, &f.styles)
	addToolFlags(fs, &f.tools)
	addModeFlags(fs, &f.mode)

	return fs
}

// parseFlags parses command flags and returns positional args.
// Errors are returned, not printed: the caller decides where usage goes.
func parseFlags(args []string) (*bundleFlags, []string, error) {
	f := &bundleFlags{}
	fs := newFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
