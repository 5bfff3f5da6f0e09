// Package runtime defines the execution collaborator used to run extracted
// snippets: the [Backend] contract, the request and result types, and a
// [Registry] for selecting a backend by kind.
//
// # Backends
//
// A backend executes one snippet at a time and reports its standard output
// and error streams. Two implementations ship with this module:
//
//   - remote: submits code to a sandboxed execution service over HTTP
//     (runtime/backend/remote).
//   - local: pipes code to a local interpreter process
//     (runtime/backend/local).
//
// # Network Policy
//
// [ExecuteRequest].Network lists the hosts the snippet may reach. Snippets
// that call provider APIs need outbound access, so callers typically pass
// [AllowAllHosts].
package runtime
