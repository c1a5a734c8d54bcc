package common

import (
	"testing"

	"github.com/pkg/errors"
)

func TestErrorKindsSurviveWrapping(t *testing.T) {
	err := errors.Wrap(NewFormatError("public key", 32, 31), "encoding header")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError in chain, got %v", err)
	}
	if fe.Field != "public key" || fe.Expected != 32 || fe.Actual != 31 {
		t.Fatalf("unexpected FormatError contents: %+v", fe)
	}
	if err.Error() != "encoding header: invalid public key: expected 32 bytes, got 31" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	err = errors.Wrap(NewRangeError("amount", -1, 8), "account 3")
	var re *RangeError
	if !errors.As(err, &re) || re.Value != "-1" || re.Width != 8 {
		t.Fatalf("expected RangeError in chain, got %v", err)
	}
}

func TestShortBufferMessage(t *testing.T) {
	err := NewShortBufferError("unsigned payload", 48, 10)
	if err.Error() != "invalid unsigned payload: expected at least 48 bytes, got 10" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNetworkLookup(t *testing.T) {
	tests := []struct {
		name string
		want Network
		ok   bool
	}{
		{"", TESTNET, true},
		{"testnet", TESTNET, true},
		{"MAINNET", MAINNET, true},
		{"privnet", Network{}, false},
	}
	for _, tt := range tests {
		got, err := NetworkByName(tt.name)
		if (err == nil) != tt.ok {
			t.Fatalf("NetworkByName(%q): unexpected error state %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("NetworkByName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if n, ok := NetworkByIdentifier(0x68); !ok || n != MAINNET {
		t.Fatal("identifier 0x68 should resolve to mainnet")
	}
	if TESTNET.AddressVersion() != 0x98 {
		t.Fatal("testnet address version should be 0x98")
	}
}

func TestBriefHash(t *testing.T) {
	if got := BriefHash("0123456789abcdef"); got != "012345..abcdef" {
		t.Fatalf("unexpected brief hash %q", got)
	}
	if got := BriefHash("abc"); got != "abc" {
		t.Fatalf("short hashes should be unchanged, got %q", got)
	}
	if GetVersion() != "v0.1.0" {
		t.Fatalf("unexpected version %q", GetVersion())
	}
}
