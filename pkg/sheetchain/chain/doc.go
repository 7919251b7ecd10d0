// Package chain implements prompt-chain orchestration: column discovery,
// data reference resolution, chain building, sequential execution against a
// completion API, and result formatting.
//
// A chain is strictly linear. Step i+1 may include the response of step i,
// so steps never run concurrently.
package chain
