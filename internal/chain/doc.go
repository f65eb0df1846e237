// Package chain talks to WeTEE nodes over Substrate JSON-RPC.
//
// A Conn is one node connection holding the runtime metadata, genesis hash
// and runtime version it needs to build, sign and watch extrinsics. A Pool
// holds one Conn per configured endpoint and serializes every use of them
// behind a single lock.
//
// Runtime calls are described by Call values built with the constructors in
// call.go and resolved against metadata at submission time, so a sudo or
// governance wrapper can carry an inner call without knowing its pallet index.
package chain
