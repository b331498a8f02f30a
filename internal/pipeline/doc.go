// Package pipeline implements the document stages of a bundling run.
//
// The stages are plain functions over readers, writers and paths:
//   - Rewriter scans the source document line by line, rewrites stylesheet
//     links, replaces bundled script tags with a single bundle tag and
//     collects the ordered script list
//   - Concatenate joins the collected scripts into the bundle file
//
// External tools (the script minifier and the stylesheet compressor) are
// driven by the root pagebundle package; the Rewriter only reports each
// stylesheet through its OnStylesheet hook so compression happens inline,
// in document order.
package pipeline
