// Package vmcatalog stands in for the bytecode VM library's catalog of
// intrinsic-variant enums. The checker only ever consumes these as opaque
// values keyed by (module symbol, method symbol); it never interprets
// their bit-level meaning, which belongs to codegen.
package vmcatalog

// HashVariant enumerates the hash families the VM implements.
type HashVariant uint8

const (
	BHP256 HashVariant = iota
	BHP512
	BHP768
	BHP1024
	Keccak256
	Keccak384
	Keccak512
	Poseidon2
	Poseidon4
	Poseidon8
	PED64
	PED128
	SHA3_256
	SHA3_384
	SHA3_512
)

// Alignment selects a hash's standard, "*raw" alignment-relaxed, or
// native form. Raw variants are a distinct HashVariant value in the real
// VM catalog; here the form is set at registration time in the intrinsic
// table rather than baked into HashVariant, since the forms share schemas.
type Alignment uint8

const (
	AlignStandard Alignment = iota
	AlignRaw
	AlignNative
)

// CommitVariant enumerates the commitment families (hash + blinding scalar).
type CommitVariant uint8

const (
	CommitBHP256 CommitVariant = iota
	CommitBHP512
	CommitBHP768
	CommitBHP1024
	CommitPED64
	CommitPED128
)

// ECDSAVariant enumerates the signature-verification address encodings.
type ECDSAVariant uint8

const (
	ECDSAEthereum ECDSAVariant = iota
	ECDSAStandard
)

// SerializeVariant enumerates serialize/deserialize bit-packing schemes.
type SerializeVariant uint8

const (
	SerializeLE SerializeVariant = iota
	SerializeBE
)

// ChaChaRandVariant enumerates the pseudo-random-number intrinsics'
// output literal type, fixed at the call site by a type parameter.
type ChaChaRandVariant uint8

const (
	ChaChaRandInt ChaChaRandVariant = iota
	ChaChaRandField
	ChaChaRandGroup
	ChaChaRandScalar
	ChaChaRandBoolean
	ChaChaRandAddress
)
