// Package run executes extracted snippets one at a time against a
// [runtime.Backend] and tallies the outcomes.
//
// For every snippet the [Runner]:
//
//  1. replaces the first matching API key placeholder with the secret
//     (see snippet.Substitute);
//  2. submits the code with the secret bound under its provider's
//     environment variable and outbound network access allowed;
//  3. classifies the result: a raised error or any error output is a
//     failure, an empty error stream is a success;
//  4. reports the code, its output streams, and the running [Tally];
//  5. waits for the configured delay before the next snippet.
//
// Only one snippet is in flight at a time and failures never stop the run.
// The Skipped counter in Tally is reported but no code path increments it.
package run
