package check

import (
	"fmt"

	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/config"
	"github.com/leo-lang/leotype/diag"
	"github.com/leo-lang/leotype/vmcatalog"
)

// Key identifies one (module symbol, method symbol) intrinsic call site,
// the lookup key of spec.md §4.4's two-level static table.
type Key struct {
	Module string
	Method string
}

// IntrinsicKind discriminates the dispatch-table value's tag. Every
// variant carries its own embedded parameters rather than living in a
// side table, per DESIGN NOTES §9 ("keep the metadata-per-variant
// pattern to avoid scattering the rules").
type IntrinsicKind uint8

const (
	IKHash IntrinsicKind = iota
	IKCommit
	IKECDSAVerify
	IKChaChaRand
	IKSerialize
	IKDeserialize
	IKMappingGet
	IKMappingGetOrUse
	IKMappingSet
	IKMappingRemove
	IKMappingContains
	IKVectorPush
	IKVectorPop
	IKVectorLen
	IKVectorClear
	IKVectorSwapRemove
	IKVectorGet
	IKVectorSet
	IKOptionalUnwrap
	IKOptionalUnwrapOr
	IKGroupToX
	IKGroupToY
	IKSignatureVerify
	IKFutureAwait
	IKSelfAddress
	IKSelfCaller
	IKSelfSigner
	IKSelfID
	IKSelfEdition
	IKSelfChecksum
	IKSelfProgramOwner
	IKBlockHeight
	IKBlockTimestamp
	IKNetworkID
	IKProgramChecksum
	IKProgramEdition
	IKProgramOwner
	IKCheatCodeSetSigner
	IKCheatCodePrintMapping
	IKCheatCodeSetBlockHeight
)

// Intrinsic is one dispatch-table entry: a tag plus the parameters that
// distinguish it from its siblings in the same Kind family.
type Intrinsic struct {
	Kind IntrinsicKind

	Hash      vmcatalog.HashVariant
	Align     vmcatalog.Alignment
	Commit    vmcatalog.CommitVariant
	ECDSA     vmcatalog.ECDSAVariant
	Serialize vmcatalog.SerializeVariant
	Out       Type // declared result literal type, when fixed at registration

	// MinNetwork gates intrinsics only available from a given network
	// edition onward (SPEC_FULL.md §11 supplemented feature #1).
	MinNetwork config.Network
}

// NumArgs returns the exact required arity (spec.md §4.4, metadata
// function 1).
func (in *Intrinsic) NumArgs() int {
	switch in.Kind {
	case IKSelfAddress, IKSelfCaller, IKSelfSigner, IKSelfID, IKSelfEdition,
		IKSelfChecksum, IKSelfProgramOwner, IKBlockHeight, IKBlockTimestamp,
		IKNetworkID:
		return 0
	case IKHash, IKChaChaRand, IKVectorPop, IKVectorLen, IKVectorClear,
		IKGroupToX, IKGroupToY, IKOptionalUnwrap, IKFutureAwait,
		IKProgramChecksum, IKProgramEdition, IKProgramOwner,
		IKCheatCodeSetSigner, IKCheatCodePrintMapping, IKCheatCodeSetBlockHeight,
		IKSerialize, IKDeserialize:
		return 1
	case IKCommit, IKECDSAVerify:
		if in.Kind == IKECDSAVerify {
			return 3
		}
		return 2
	case IKMappingGet, IKMappingRemove, IKMappingContains, IKVectorPush,
		IKVectorSwapRemove, IKVectorGet, IKOptionalUnwrapOr:
		return 2
	case IKMappingGetOrUse, IKMappingSet, IKVectorSet:
		return 3
	case IKSignatureVerify:
		return 3
	default:
		return 1
	}
}

// IsFinalizeCommand reports whether this intrinsic may only be called
// inside an async context (spec.md §4.4, metadata function 2).
func (in *Intrinsic) IsFinalizeCommand() bool {
	switch in.Kind {
	case IKMappingGet, IKMappingGetOrUse, IKMappingSet, IKMappingRemove, IKMappingContains,
		IKVectorPush, IKVectorPop, IKVectorLen, IKVectorClear, IKVectorSwapRemove, IKVectorSet,
		IKBlockHeight, IKBlockTimestamp, IKProgramChecksum, IKProgramEdition, IKProgramOwner:
		return true
	default:
		return false
	}
}

// literalClassOK reports whether t is legal as the first argument to a
// hash/commit/ECDSA-digest family: not a mapping, tuple, or unit
// (spec.md §4.4 hash-family schema).
func literalClassOK(t Type) bool {
	switch t.Cat {
	case MappingT, TupleT, UnitT:
		return false
	default:
		return true
	}
}

func isSmallInteger(t Type, maxBits int) bool {
	switch t.Cat {
	case BooleanT:
		return true
	case IntegerT:
		return BitWidth(t.Integer) <= maxBits
	case NumericT:
		return true
	default:
		return false
	}
}

func argErr(span ast.Span, code diag.Code, format string, a ...interface{}) *diag.Error {
	return &diag.Error{Code: code, Span: span, Msg: fmt.Sprintf(format, a...)}
}

// pedersenLimit returns the bit-capacity a Pedersen variant accepts, or 0
// if the variant is not a Pedersen family.
func pedersenLimit(v vmcatalog.HashVariant) int {
	switch v {
	case vmcatalog.PED64:
		return 64
	case vmcatalog.PED128:
		return 128
	default:
		return 0
	}
}

func hashOutputBits(v vmcatalog.HashVariant) int {
	switch v {
	case vmcatalog.Keccak256, vmcatalog.SHA3_256:
		return 256
	case vmcatalog.Keccak384, vmcatalog.SHA3_384:
		return 384
	case vmcatalog.Keccak512, vmcatalog.SHA3_512:
		return 512
	default:
		return 0
	}
}

// TypeCheck validates argument types per the schema for in.Kind and
// returns the result type, or a diagnostic (spec.md §4.4, metadata
// function 3). argTypes are the already-synthesized types of the call's
// arguments, in order; span is the call expression's span.
func (in *Intrinsic) TypeCheck(cfg config.Config, args []Type, span ast.Span, resolve structResolver) (Type, *diag.Error) {
	switch in.Kind {
	case IKHash:
		return in.checkHash(args, span, resolve)
	case IKCommit:
		return in.checkCommit(args, span, resolve)
	case IKECDSAVerify:
		return in.checkECDSAVerify(args, span, resolve)
	case IKChaChaRand:
		return in.Out, nil
	case IKSerialize:
		return in.checkSerialize(cfg, args, span, resolve)
	case IKDeserialize:
		return in.checkDeserialize(cfg, args, span, resolve)
	case IKMappingGet:
		return in.checkMappingGet(args, span, false)
	case IKMappingGetOrUse:
		return in.checkMappingGetOrUse(args, span)
	case IKMappingSet:
		return in.checkMappingSet(args, span)
	case IKMappingRemove, IKMappingContains:
		if len(args) != 2 || args[0].Cat != MappingT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a mapping as the first argument")
		}
		if !UserEq("", *args[0].Key, args[1]) {
			return Err(), argErr(span, diag.CodeExpectedGotType, "key type mismatch")
		}
		return Boolean(), nil
	case IKVectorPush:
		return in.checkVectorPush(args, span)
	case IKVectorPop:
		if len(args) != 1 || args[0].Cat != VectorT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a vector")
		}
		return *args[0].Elem, nil
	case IKVectorLen:
		if len(args) != 1 || args[0].Cat != VectorT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a vector")
		}
		return Integer(ast.U32), nil
	case IKVectorClear:
		if len(args) != 1 || args[0].Cat != VectorT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a vector")
		}
		return Unit(), nil
	case IKVectorSwapRemove, IKVectorGet:
		return in.checkVectorIndex(args, span)
	case IKVectorSet:
		return in.checkVectorSet(args, span)
	case IKOptionalUnwrap:
		if len(args) != 1 || args[0].Cat != OptionalT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected an optional")
		}
		return *args[0].Elem, nil
	case IKOptionalUnwrapOr:
		if len(args) != 2 || args[0].Cat != OptionalT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected an optional")
		}
		inner := *args[0].Elem
		if !UserEq("", inner, args[1]) {
			return Err(), argErr(span, diag.CodeExpectedGotType, "fallback type does not match wrapped type")
		}
		return inner, nil
	case IKGroupToX, IKGroupToY:
		if len(args) != 1 || args[0].Cat != GroupT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a group element")
		}
		return Field(), nil
	case IKSignatureVerify:
		if len(args) != 3 || args[0].Cat != SignatureT || args[1].Cat != AddressT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected (signature, address, field)")
		}
		return Boolean(), nil
	case IKFutureAwait:
		if len(args) != 1 || args[0].Cat != FutureT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a future")
		}
		return Unit(), nil
	case IKSelfAddress, IKSelfCaller, IKSelfSigner, IKSelfProgramOwner:
		return Address(), nil
	case IKSelfID:
		return Field(), nil
	case IKSelfEdition:
		return Integer(ast.U16), nil
	case IKSelfChecksum:
		return Array(Integer(ast.U8), 32), nil
	case IKBlockHeight:
		return Integer(ast.U32), nil
	case IKBlockTimestamp:
		return Integer(ast.I64), nil
	case IKNetworkID:
		return Integer(ast.U16), nil
	case IKProgramChecksum, IKProgramEdition, IKProgramOwner:
		return in.checkProgramMeta(args, span)
	case IKCheatCodeSetSigner:
		if len(args) != 1 || args[0].Cat != StringT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a string literal private key")
		}
		return Unit(), nil
	case IKCheatCodePrintMapping:
		if len(args) != 1 || args[0].Cat != MappingT {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a mapping")
		}
		return Unit(), nil
	case IKCheatCodeSetBlockHeight:
		if len(args) != 1 || args[0].Cat != IntegerT || args[0].Integer != ast.U32 {
			return Err(), argErr(span, diag.CodeExpectedGotType, "expected a u32")
		}
		return Unit(), nil
	default:
		return Err(), argErr(span, diag.CodeSymbolNotFound, "unrecognized intrinsic")
	}
}

func (in *Intrinsic) checkHash(args []Type, span ast.Span, resolve structResolver) (Type, *diag.Error) {
	if len(args) != 1 {
		return Err(), argErr(span, diag.CodeIncorrectNumArgs, "hash expects 1 argument")
	}
	t := args[0]
	if !literalClassOK(t) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "hash input may not be a mapping, tuple, or unit")
	}
	if limit := pedersenLimit(in.Hash); limit > 0 {
		if !isSmallInteger(t.BaseElementType(), limit) {
			return Err(), argErr(span, diag.CodeExpectedGotType, "pedersen hash input must be boolean or an integer of at most %d bits", limit)
		}
	}
	switch in.Align {
	case vmcatalog.AlignNative:
		bits := hashOutputBits(in.Hash)
		if t.Cat != ArrayT || t.Elem.Cat != BooleanT || int(t.ArrayLen) != bits {
			return Err(), argErr(span, diag.CodeExpectedGotType, "native hash variant expects a [boolean; %d] bit array", bits)
		}
		return Array(Boolean(), uint32(hashOutputBits(in.Hash))), nil
	case vmcatalog.AlignRaw:
		bits, err := SizeInBits(t, true, resolve)
		if err != nil || bits%8 != 0 {
			return Err(), argErr(span, diag.CodeExpectedGotType, "raw hash input size in bits must be a multiple of 8")
		}
	}
	return in.Out, nil
}

func (in *Intrinsic) checkCommit(args []Type, span ast.Span, resolve structResolver) (Type, *diag.Error) {
	if len(args) != 2 {
		return Err(), argErr(span, diag.CodeIncorrectNumArgs, "commit expects 2 arguments")
	}
	data, blind := args[0], args[1]
	if !literalClassOK(data) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "commit input may not be a mapping, tuple, or unit")
	}
	if blind.Cat != ScalarT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "commit randomizer must be a scalar")
	}
	hashVariant := map[vmcatalog.CommitVariant]vmcatalog.HashVariant{
		vmcatalog.CommitBHP256: vmcatalog.BHP256, vmcatalog.CommitBHP512: vmcatalog.BHP512,
		vmcatalog.CommitBHP768: vmcatalog.BHP768, vmcatalog.CommitBHP1024: vmcatalog.BHP1024,
		vmcatalog.CommitPED64: vmcatalog.PED64, vmcatalog.CommitPED128: vmcatalog.PED128,
	}[in.Commit]
	if limit := pedersenLimit(hashVariant); limit > 0 && !isSmallInteger(data.BaseElementType(), limit) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "pedersen commit input must be boolean or an integer of at most %d bits", limit)
	}
	return in.Out, nil
}

func (in *Intrinsic) checkECDSAVerify(args []Type, span ast.Span, resolve structResolver) (Type, *diag.Error) {
	if len(args) != 3 {
		return Err(), argErr(span, diag.CodeIncorrectNumArgs, "ecdsa verify expects 3 arguments")
	}
	sig, addrBytes, digest := args[0], args[1], args[2]
	if sig.Cat != ArrayT || sig.Elem.Cat != IntegerT || sig.Elem.Integer != ast.U8 || sig.ArrayLen != 65 {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected [u8; 65] signature")
	}
	wantLen := uint32(32)
	if in.ECDSA == vmcatalog.ECDSAEthereum {
		wantLen = 20
	}
	if addrBytes.Cat != ArrayT || addrBytes.Elem.Cat != IntegerT || addrBytes.Elem.Integer != ast.U8 || addrBytes.ArrayLen != wantLen {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected [u8; %d] address bytes", wantLen)
	}
	if !literalClassOK(digest) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "digest may not be a mapping, tuple, or unit")
	}
	if digest.Cat == ArrayT && digest.Elem.Cat == IntegerT && digest.Elem.Integer == ast.U8 && digest.ArrayLen == 32 {
		return Boolean(), nil
	}
	bits, err := SizeInBits(digest, true, resolve)
	if err != nil || bits%8 != 0 {
		return Err(), argErr(span, diag.CodeExpectedGotType, "digest size in bits must be a multiple of 8, or exactly [u8; 32]")
	}
	return Boolean(), nil
}

func (in *Intrinsic) checkSerialize(cfg config.Config, args []Type, span ast.Span, resolve structResolver) (Type, *diag.Error) {
	if len(args) != 1 {
		return Err(), argErr(span, diag.CodeIncorrectNumArgs, "serialize expects 1 argument")
	}
	if !isLiteralOrArrayOfLiterals(args[0]) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "serialize input must be a literal or (possibly multi-dimensional) array of literals")
	}
	bits, err := SizeInBits(args[0], false, resolve)
	if err != nil || bits == 0 {
		return Err(), argErr(span, diag.CodeExpectedGotType, "serialize input has no non-zero serialized size")
	}
	if bits > cfg.MaxArrayElements {
		return Err(), argErr(span, diag.CodeArrayTooLarge, "serialized size %d exceeds the configured array-element limit", bits)
	}
	return Array(Boolean(), uint32(bits)), nil
}

func (in *Intrinsic) checkDeserialize(cfg config.Config, args []Type, span ast.Span, resolve structResolver) (Type, *diag.Error) {
	if len(args) != 1 {
		return Err(), argErr(span, diag.CodeIncorrectNumArgs, "deserialize expects 1 argument")
	}
	bits, err := SizeInBits(in.Out, false, resolve)
	if err != nil {
		return Err(), argErr(span, diag.CodeExpectedGotType, "deserialize target type has no fixed serialized size")
	}
	t := args[0]
	if t.Cat != ArrayT || t.Elem.Cat != BooleanT || int(t.ArrayLen) != bits {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected [boolean; %d]", bits)
	}
	return in.Out, nil
}

func isLiteralOrArrayOfLiterals(t Type) bool {
	switch t.Cat {
	case AddressT, BooleanT, FieldT, GroupT, ScalarT, SignatureT, IntegerT:
		return true
	case ArrayT:
		return isLiteralOrArrayOfLiterals(*t.Elem)
	default:
		return false
	}
}

func (in *Intrinsic) checkMappingGet(args []Type, span ast.Span, orUse bool) (Type, *diag.Error) {
	if len(args) != 2 || args[0].Cat != MappingT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected a mapping as the first argument")
	}
	if !UserEq("", *args[0].Key, args[1]) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "key type mismatch")
	}
	return *args[0].Value, nil
}

func (in *Intrinsic) checkMappingGetOrUse(args []Type, span ast.Span) (Type, *diag.Error) {
	if len(args) != 3 || args[0].Cat != MappingT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected a mapping as the first argument")
	}
	if !UserEq("", *args[0].Key, args[1]) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "key type mismatch")
	}
	if !UserEq("", *args[0].Value, args[2]) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "default value type does not match mapping value type")
	}
	return *args[0].Value, nil
}

func (in *Intrinsic) checkMappingSet(args []Type, span ast.Span) (Type, *diag.Error) {
	if len(args) != 3 || args[0].Cat != MappingT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected a mapping as the first argument")
	}
	if !UserEq("", *args[0].Key, args[1]) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "key type mismatch")
	}
	if !UserEq("", *args[0].Value, args[2]) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "value type mismatch")
	}
	return Unit(), nil
}

func (in *Intrinsic) checkVectorPush(args []Type, span ast.Span) (Type, *diag.Error) {
	if len(args) != 2 || args[0].Cat != VectorT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected a vector as the first argument")
	}
	if !UserEq("", *args[0].Elem, args[1]) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "element type mismatch")
	}
	return Unit(), nil
}

func (in *Intrinsic) checkVectorIndex(args []Type, span ast.Span) (Type, *diag.Error) {
	if len(args) != 2 || args[0].Cat != VectorT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected a vector as the first argument")
	}
	if !args[1].IsFieldOrInteger() && args[1].Cat != NumericT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "index must be an integer")
	}
	if in.Kind == IKVectorSwapRemove {
		return *args[0].Elem, nil
	}
	return *args[0].Elem, nil
}

func (in *Intrinsic) checkVectorSet(args []Type, span ast.Span) (Type, *diag.Error) {
	if len(args) != 3 || args[0].Cat != VectorT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected a vector as the first argument")
	}
	if !UserEq("", *args[0].Elem, args[2]) {
		return Err(), argErr(span, diag.CodeExpectedGotType, "element type mismatch")
	}
	return Unit(), nil
}

var programAddressPattern = `^[a-zA-Z][a-zA-Z0-9_]*\.aleo$`

func (in *Intrinsic) checkProgramMeta(args []Type, span ast.Span) (Type, *diag.Error) {
	if len(args) != 1 || args[0].Cat != AddressT {
		return Err(), argErr(span, diag.CodeExpectedGotType, "expected an address literal matching %s", programAddressPattern)
	}
	switch in.Kind {
	case IKProgramChecksum:
		return Array(Integer(ast.U8), 32), nil
	case IKProgramEdition:
		return Integer(ast.U16), nil
	default:
		return Address(), nil
	}
}

// Catalog is the static dispatcher from (module, method) to Intrinsic,
// built once at construction time for a selected network (spec.md §4.4;
// DESIGN NOTES §9's "two-level hash-map built at initialization").
type Catalog struct {
	table map[Key]*Intrinsic
}

// NewCatalog builds the catalog for network, omitting entries whose
// MinNetwork is not satisfied.
func NewCatalog(network config.Network) *Catalog {
	c := &Catalog{table: map[Key]*Intrinsic{}}
	c.registerHashAndCommit()
	c.registerChaCha()
	c.registerECDSA()
	c.registerSerde()
	c.registerContainers()
	c.registerMisc()
	c.registerCheatCodes()
	for k, in := range c.table {
		if in.MinNetwork > network {
			delete(c.table, k)
		}
	}
	return c
}

// Lookup resolves a (module, method) pair to its Intrinsic by a plain
// table lookup. The two unresolved get/set overloads have no table entry;
// ResolveUnresolvedGet and ResolveUnresolvedSet rewrite them from the
// container's already-inferred type (spec.md §4.4).
func (c *Catalog) Lookup(module, method string) (*Intrinsic, bool) {
	in, ok := c.table[Key{module, method}]
	return in, ok
}

// ResolveUnresolvedGet rewrites `__unresolved_get` into VectorGet or
// MappingGet based on the already-inferred container type.
func (c *Catalog) ResolveUnresolvedGet(container Type) *Intrinsic {
	if container.Cat == VectorT {
		return &Intrinsic{Kind: IKVectorGet}
	}
	return &Intrinsic{Kind: IKMappingGet}
}

// ResolveUnresolvedSet rewrites `__unresolved_set` into VectorSet or
// MappingSet based on the already-inferred container type.
func (c *Catalog) ResolveUnresolvedSet(container Type) *Intrinsic {
	if container.Cat == VectorT {
		return &Intrinsic{Kind: IKVectorSet}
	}
	return &Intrinsic{Kind: IKMappingSet}
}

func intWidths() []ast.IntegerWidth {
	return []ast.IntegerWidth{ast.I8, ast.I16, ast.I32, ast.I64, ast.I128, ast.U8, ast.U16, ast.U32, ast.U64, ast.U128}
}

func intSuffix(w ast.IntegerWidth) string { return integerName(w) }

// The registered method names mirror the original `hash_to_<X>` / `commit_to_<X>`
// method-symbol convention documented in core_function.rs.
func (c *Catalog) registerHashAndCommit() {
	hashFamilies := []struct {
		module  string
		variant vmcatalog.HashVariant
		raw     bool
		native  bool
	}{
		{"BHP256", vmcatalog.BHP256, true, false},
		{"BHP512", vmcatalog.BHP512, true, false},
		{"BHP768", vmcatalog.BHP768, true, false},
		{"BHP1024", vmcatalog.BHP1024, true, false},
		{"Keccak256", vmcatalog.Keccak256, true, true},
		{"Keccak384", vmcatalog.Keccak384, true, true},
		{"Keccak512", vmcatalog.Keccak512, true, true},
		{"SHA3_256", vmcatalog.SHA3_256, true, true},
		{"SHA3_384", vmcatalog.SHA3_384, true, true},
		{"SHA3_512", vmcatalog.SHA3_512, true, true},
		{"Poseidon2", vmcatalog.Poseidon2, false, false},
		{"Poseidon4", vmcatalog.Poseidon4, false, false},
		{"Poseidon8", vmcatalog.Poseidon8, false, false},
		{"PED64", vmcatalog.PED64, false, false},
		{"PED128", vmcatalog.PED128, false, false},
	}
	targets := []struct {
		method string
		out    Type
	}{
		{"to_address", Address()}, {"to_field", Field()}, {"to_group", Group()}, {"to_scalar", Scalar()},
	}
	for _, w := range intWidths() {
		targets = append(targets, struct {
			method string
			out    Type
		}{"to_" + intSuffix(w), Integer(w)})
	}

	for _, f := range hashFamilies {
		for _, t := range targets {
			c.table[Key{f.module, "hash_" + t.method}] = &Intrinsic{Kind: IKHash, Hash: f.variant, Align: vmcatalog.AlignStandard, Out: t.out}
			if f.raw {
				c.table[Key{f.module, "hash_" + t.method + "_raw"}] = &Intrinsic{Kind: IKHash, Hash: f.variant, Align: vmcatalog.AlignRaw, Out: t.out}
			}
		}
		if f.native {
			bits := hashOutputBits(f.variant)
			c.table[Key{f.module, "hash_native"}] = &Intrinsic{Kind: IKHash, Hash: f.variant, Align: vmcatalog.AlignNative, Out: Array(Boolean(), uint32(bits))}
			c.table[Key{f.module, "hash_native_raw"}] = &Intrinsic{Kind: IKHash, Hash: f.variant, Align: vmcatalog.AlignNative, Out: Array(Boolean(), uint32(bits))}
		}
	}

	commitFamilies := []struct {
		module  string
		variant vmcatalog.CommitVariant
	}{
		{"BHP256", vmcatalog.CommitBHP256}, {"BHP512", vmcatalog.CommitBHP512},
		{"BHP768", vmcatalog.CommitBHP768}, {"BHP1024", vmcatalog.CommitBHP1024},
		{"Pedersen64", vmcatalog.CommitPED64}, {"Pedersen128", vmcatalog.CommitPED128},
	}
	commitTargets := []struct {
		method string
		out    Type
	}{{"to_address", Address()}, {"to_field", Field()}, {"to_group", Group()}}
	for _, f := range commitFamilies {
		for _, t := range commitTargets {
			c.table[Key{f.module, "commit_" + t.method}] = &Intrinsic{Kind: IKCommit, Commit: f.variant, Out: t.out}
		}
	}
}

func (c *Catalog) registerChaCha() {
	targets := []struct {
		method string
		out    Type
	}{
		{"rand_address", Address()}, {"rand_bool", Boolean()}, {"rand_field", Field()},
		{"rand_group", Group()}, {"rand_scalar", Scalar()},
	}
	for _, w := range intWidths() {
		targets = append(targets, struct {
			method string
			out    Type
		}{"rand_" + intSuffix(w), Integer(w)})
	}
	for _, t := range targets {
		c.table[Key{"ChaCha", t.method}] = &Intrinsic{Kind: IKChaChaRand, Out: t.out}
	}
}

func (c *Catalog) registerECDSA() {
	c.table[Key{"ECDSA", "verify_eth"}] = &Intrinsic{Kind: IKECDSAVerify, ECDSA: vmcatalog.ECDSAEthereum}
	c.table[Key{"ECDSA", "verify"}] = &Intrinsic{Kind: IKECDSAVerify, ECDSA: vmcatalog.ECDSAStandard}
}

func (c *Catalog) registerSerde() {
	c.table[Key{"BHP256", "serialize"}] = &Intrinsic{Kind: IKSerialize}
	c.table[Key{"bytes", "to_bits"}] = &Intrinsic{Kind: IKSerialize}
	// Deserialize needs a type parameter T; callers construct a fresh
	// Intrinsic with Out set to the target type at the call site, since
	// the catalog cannot enumerate every possible T ahead of time.
}

// NewDeserialize builds the Deserialize(variant, T) intrinsic for a call
// site, since T is a type argument rather than part of the static key.
func NewDeserialize(variant vmcatalog.SerializeVariant, target Type) *Intrinsic {
	return &Intrinsic{Kind: IKDeserialize, Serialize: variant, Out: target}
}

func (c *Catalog) registerContainers() {
	c.table[Key{"Mapping", "get"}] = &Intrinsic{Kind: IKMappingGet}
	c.table[Key{"Mapping", "get_or_use"}] = &Intrinsic{Kind: IKMappingGetOrUse}
	c.table[Key{"Mapping", "set"}] = &Intrinsic{Kind: IKMappingSet}
	c.table[Key{"Mapping", "remove"}] = &Intrinsic{Kind: IKMappingRemove}
	c.table[Key{"Mapping", "contains"}] = &Intrinsic{Kind: IKMappingContains}

	c.table[Key{"Vector", "push"}] = &Intrinsic{Kind: IKVectorPush}
	c.table[Key{"Vector", "pop"}] = &Intrinsic{Kind: IKVectorPop}
	c.table[Key{"Vector", "len"}] = &Intrinsic{Kind: IKVectorLen}
	c.table[Key{"Vector", "clear"}] = &Intrinsic{Kind: IKVectorClear}
	c.table[Key{"Vector", "swap_remove"}] = &Intrinsic{Kind: IKVectorSwapRemove}
	c.table[Key{"Vector", "get"}] = &Intrinsic{Kind: IKVectorGet}
	c.table[Key{"Vector", "set"}] = &Intrinsic{Kind: IKVectorSet}

	c.table[Key{"Optional", "unwrap"}] = &Intrinsic{Kind: IKOptionalUnwrap}
	c.table[Key{"Optional", "unwrap_or"}] = &Intrinsic{Kind: IKOptionalUnwrapOr}
}

func (c *Catalog) registerMisc() {
	c.table[Key{"group", "to_x_coordinate"}] = &Intrinsic{Kind: IKGroupToX}
	c.table[Key{"group", "to_y_coordinate"}] = &Intrinsic{Kind: IKGroupToY}
	c.table[Key{"Signature", "verify"}] = &Intrinsic{Kind: IKSignatureVerify}
	c.table[Key{"Future", "await"}] = &Intrinsic{Kind: IKFutureAwait}

	c.table[Key{"self", "address"}] = &Intrinsic{Kind: IKSelfAddress}
	c.table[Key{"self", "caller"}] = &Intrinsic{Kind: IKSelfCaller}
	c.table[Key{"self", "signer"}] = &Intrinsic{Kind: IKSelfSigner}
	c.table[Key{"self", "id"}] = &Intrinsic{Kind: IKSelfID}
	c.table[Key{"self", "edition"}] = &Intrinsic{Kind: IKSelfEdition}
	c.table[Key{"self", "checksum"}] = &Intrinsic{Kind: IKSelfChecksum}
	c.table[Key{"self", "program_owner"}] = &Intrinsic{Kind: IKSelfProgramOwner}

	c.table[Key{"block", "height"}] = &Intrinsic{Kind: IKBlockHeight}
	c.table[Key{"block", "timestamp"}] = &Intrinsic{Kind: IKBlockTimestamp}
	c.table[Key{"network", "id"}] = &Intrinsic{Kind: IKNetworkID}

	c.table[Key{"program", "checksum"}] = &Intrinsic{Kind: IKProgramChecksum}
	c.table[Key{"program", "edition"}] = &Intrinsic{Kind: IKProgramEdition}
	c.table[Key{"program", "owner"}] = &Intrinsic{Kind: IKProgramOwner}
}

func (c *Catalog) registerCheatCodes() {
	c.table[Key{"CheatCode", "set_signer"}] = &Intrinsic{Kind: IKCheatCodeSetSigner, MinNetwork: config.Testnet}
	c.table[Key{"CheatCode", "print_mapping"}] = &Intrinsic{Kind: IKCheatCodePrintMapping, MinNetwork: config.Testnet}
	c.table[Key{"CheatCode", "set_block_height"}] = &Intrinsic{Kind: IKCheatCodeSetBlockHeight, MinNetwork: config.Testnet}
}
