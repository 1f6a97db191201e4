package check

import (
	"testing"

	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/config"
)

func TestCatalogLookupKnownIntrinsic(t *testing.T) {
	cat := NewCatalog(config.Mainnet)
	in, ok := cat.Lookup("Mapping", "get")
	if !ok || in.Kind != IKMappingGet {
		t.Fatalf("expected Mapping::get to resolve to IKMappingGet, got %v, %v", in, ok)
	}
}

func TestCatalogNetworkGating(t *testing.T) {
	mainnet := NewCatalog(config.Mainnet)
	if _, ok := mainnet.Lookup("CheatCode", "set_signer"); ok {
		t.Errorf("CheatCode::set_signer must not be registered on mainnet")
	}
	testnet := NewCatalog(config.Testnet)
	if _, ok := testnet.Lookup("CheatCode", "set_signer"); !ok {
		t.Errorf("CheatCode::set_signer must be registered on testnet")
	}
}

func TestIntrinsicNumArgsAndFinalizeCommand(t *testing.T) {
	mappingGet := &Intrinsic{Kind: IKMappingGet}
	if mappingGet.NumArgs() != 2 {
		t.Errorf("Mapping::get should take 2 args, got %d", mappingGet.NumArgs())
	}
	if !mappingGet.IsFinalizeCommand() {
		t.Errorf("Mapping::get must be a finalize-only command")
	}

	hash := &Intrinsic{Kind: IKHash}
	if hash.NumArgs() != 1 {
		t.Errorf("a hash intrinsic should take 1 arg, got %d", hash.NumArgs())
	}
	if hash.IsFinalizeCommand() {
		t.Errorf("a hash intrinsic must not be finalize-only")
	}
}

func TestMappingGetTypeCheck(t *testing.T) {
	cat := NewCatalog(config.Mainnet)
	in, _ := cat.Lookup("Mapping", "get")
	mapping := Mapping(Address(), Integer(ast.U64))
	result, err := in.TypeCheck(config.Default(), []Type{mapping, Address()}, ast.Span{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cat != IntegerT || result.Integer != ast.U64 {
		t.Errorf("Mapping::get should return the mapping's value type, got %v", result)
	}

	if _, err := in.TypeCheck(config.Default(), []Type{mapping, Boolean()}, ast.Span{}, nil); err == nil {
		t.Errorf("expected a key-type mismatch error")
	}
}

func TestVectorPushTypeCheck(t *testing.T) {
	cat := NewCatalog(config.Mainnet)
	in, _ := cat.Lookup("Vector", "push")
	vec := Vector(Field())
	if _, err := in.TypeCheck(config.Default(), []Type{vec, Field()}, ast.Span{}, nil); err != nil {
		t.Errorf("unexpected error pushing a matching element: %v", err)
	}
	if _, err := in.TypeCheck(config.Default(), []Type{vec, Boolean()}, ast.Span{}, nil); err == nil {
		t.Errorf("expected an element-type mismatch error")
	}
}

func TestOptionalUnwrapOrTypeCheck(t *testing.T) {
	cat := NewCatalog(config.Mainnet)
	in, _ := cat.Lookup("Optional", "unwrap_or")
	opt := Optional(Field())
	result, err := in.TypeCheck(config.Default(), []Type{opt, Field()}, ast.Span{}, nil)
	if err != nil || result.Cat != FieldT {
		t.Fatalf("expected field result, got %v, err=%v", result, err)
	}
	if _, err := in.TypeCheck(config.Default(), []Type{opt, Boolean()}, ast.Span{}, nil); err == nil {
		t.Errorf("expected a fallback-type mismatch error")
	}
}

func TestECDSAVerifyRejectsWrongSignatureShape(t *testing.T) {
	cat := NewCatalog(config.Mainnet)
	in, _ := cat.Lookup("ECDSA", "verify")
	badSig := Array(Integer(ast.U8), 64)
	addr := Array(Integer(ast.U8), 32)
	digest := Array(Integer(ast.U8), 32)
	if _, err := in.TypeCheck(config.Default(), []Type{badSig, addr, digest}, ast.Span{}, nil); err == nil {
		t.Errorf("expected an error for a 64-byte (not 65-byte) signature array")
	}
}

func TestResolveUnresolvedGetSet(t *testing.T) {
	cat := NewCatalog(config.Mainnet)
	if got := cat.ResolveUnresolvedGet(Vector(Field())); got.Kind != IKVectorGet {
		t.Errorf("expected unresolved get on a vector to resolve to IKVectorGet")
	}
	if got := cat.ResolveUnresolvedGet(Mapping(Address(), Field())); got.Kind != IKMappingGet {
		t.Errorf("expected unresolved get on a mapping to resolve to IKMappingGet")
	}
	if got := cat.ResolveUnresolvedSet(Vector(Field())); got.Kind != IKVectorSet {
		t.Errorf("expected unresolved set on a vector to resolve to IKVectorSet")
	}
}
