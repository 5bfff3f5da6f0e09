// Package config resolves the process configuration for a snippet run: the
// provider's API key record, the runtime revision for the target language,
// and the execution service credentials.
//
// Every value comes from the environment. Providers beyond the built-in set
// can be declared in a YAML file:
//
//	providers:
//	  openai:
//	    env: OPENAI_API_KEY
//	    description: OpenAI API
//
// All resolution failures wrap [ErrConfiguration]; callers treat them as
// fatal before any snippet runs.
package config
