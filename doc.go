// Package pagebundle bundles the scripts and stylesheets of a static web page.
//
// # Quick Start
//
// Given a page laid out as
//
//	src/
//	├── index.html
//	├── css/
//	│   └── main.css
//	└── js/
//	    ├── engine.js
//	    └── game.js
//
// a run rewrites index.html into the output document, compresses every
// referenced stylesheet, concatenates the referenced scripts in document
// order into js/min.js and minifies that bundle with an external tool:
//
//	b := pagebundle.New()
//	res, err := b.Run(ctx, pagebundle.Paths{
//	    InputHTML:             "src/index.html",
//	    OutputHTML:            "game/index.html",
//	    ToolPath:              "node_modules/uglify-js/bin/uglifyjs",
//	    PathFromOutputToInput: "../src/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Layout.BundlePath) // src/js/min.js
//
// # Pipeline
//
// Stages run strictly in sequence and the first failure aborts the rest:
//
//  1. Validation (NewLayout): input and output differ, the input document,
//     the minifier tool and the scripts directory exist
//  2. Rewrite: blank lines are dropped, stylesheet links point at minified
//     names (each stylesheet is compressed as soon as it is seen), script tags
//     collapse into one tag for the bundle
//  3. Concatenation: scripts are joined byte for byte, without separators
//  4. Minification: "node <tool> <bundle>" replaces the bundle with its stdout
//
// References whose names already contain "min.js" or "min.css" are treated as
// minified upstream: such stylesheets are not compressed and such scripts are
// neither bundled nor, unless WithKeepPreMinified is set, kept in the output.
//
// # Tools
//
// The script minifier is any node program that prints its result to stdout
// (UglifyJS, for example). Stylesheets go through the YUI compressor
// ("java -jar yuicompressor-2.4.8.jar in.css -o out.css") by default; the
// builtin engine minifies them in-process instead:
//
//	c, _ := pagebundle.NewCompressor(pagebundle.EngineBuiltin, "", "")
//	b := pagebundle.New(pagebundle.WithCompressor(c))
package pagebundle
