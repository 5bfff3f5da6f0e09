// Package snippet extracts fenced code blocks from provider documentation and
// prepares them for execution.
//
// # Extraction
//
// [Parse] walks a document line by line and collects the bodies of blocks
// fenced with a language-tagged opening marker and a bare closing marker:
//
//	```python
//	print("hello")
//	```
//
// Only the exact tag for the requested [Language] opens a block. Markers are
// compared after trimming surrounding whitespace; the lines between them are
// kept verbatim. A document that ends inside a block yields no snippet for
// that block and sets [Document].Unclosed.
//
// [Extract] and [ExtractFile] wrap Parse and surface diagnostics through a
// [Logger] instead of returning errors, so callers always receive a usable
// (possibly empty) snippet list.
//
// # Placeholders
//
// Documentation samples carry placeholder API keys. [Substitute] replaces the
// first occurrence of the first matching entry in [Placeholders], checked in
// declaration order.
package snippet
