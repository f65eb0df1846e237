package chain

import "errors"

var (
	// ErrConnection indicates the node could not be reached or initialised.
	ErrConnection = errors.New("chain connection error")

	// ErrRPC indicates an RPC call to the node failed.
	ErrRPC = errors.New("chain rpc error")

	// ErrMetadata indicates a call or storage item is missing from runtime metadata.
	ErrMetadata = errors.New("runtime metadata error")

	// ErrClientIndex indicates a pool slot that does not exist.
	ErrClientIndex = errors.New("no chain client at index")

	// ErrExtrinsicRejected indicates the transaction pool dropped, invalidated or usurped the extrinsic.
	ErrExtrinsicRejected = errors.New("extrinsic rejected")

	// ErrExtrinsicFailed indicates the extrinsic was included but dispatch failed.
	ErrExtrinsicFailed = errors.New("extrinsic failed")
)
