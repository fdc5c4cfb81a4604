package foreign

import (
	"math"
	"testing"

	"github.com/wippyai/docbridge/errors"
)

func TestValue_RoundTrip(t *testing.T) {
	if b, err := Bool(true).Boolean(); err != nil || !b {
		t.Errorf("Bool: %v %v", b, err)
	}
	if v, err := Byte(-128).Byte(); err != nil || v != -128 {
		t.Errorf("Byte: %v %v", v, err)
	}
	if v, err := Char(0x263A).Char(); err != nil || v != 0x263A {
		t.Errorf("Char: %v %v", v, err)
	}
	if v, err := Short(-2).Short(); err != nil || v != -2 {
		t.Errorf("Short: %v %v", v, err)
	}
	if v, err := Int(math.MinInt32).Int(); err != nil || v != math.MinInt32 {
		t.Errorf("Int: %v %v", v, err)
	}
	if v, err := Long(-1).Long(); err != nil || v != -1 {
		t.Errorf("Long: %v %v", v, err)
	}
	if v, err := Float(595.5).Float(); err != nil || v != 595.5 {
		t.Errorf("Float: %v %v", v, err)
	}
	if v, err := Double(math.Pi).Double(); err != nil || v != math.Pi {
		t.Errorf("Double: %v %v", v, err)
	}
}

func TestValue_FromBits(t *testing.T) {
	f := Float(12.25)
	back := FromBits(f.Kind(), f.Bits())
	if v, _ := back.Float(); v != 12.25 {
		t.Fatalf("FromBits float = %v", v)
	}
	i := Int(-7)
	if v, _ := FromBits(KindInt, i.Bits()).Int(); v != -7 {
		t.Fatalf("FromBits int = %v", v)
	}
}

func TestValue_TypeMismatch(t *testing.T) {
	_, err := Int(1).Float()
	if err == nil {
		t.Fatal("expected mismatch")
	}
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindTypeMismatch}) {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Void.Object(); err == nil {
		t.Fatal("void is not an object")
	}
}

func TestValue_Objects(t *testing.T) {
	if !Null.IsNull() {
		t.Fatal("Null should be null")
	}
	if !Obj(nil).IsNull() {
		t.Fatal("Obj(nil) should be null")
	}
	type wrapper struct{ Handle }
	if !Obj((*wrapper)(nil)).IsNull() {
		t.Fatal("Obj of a nil wrapper pointer should be null")
	}
	h := Handle{ref: 9, ctx: 3}
	v := Obj(h)
	if v.IsNull() || v.Ref() != 9 {
		t.Fatalf("unexpected value %v", v)
	}
	got, err := v.Object()
	if err != nil || got != h {
		t.Fatalf("Object() = %v, %v", got, err)
	}
	if Int(1).IsNull() {
		t.Fatal("primitives are never null")
	}
	if RefValue(5).Ref() != 5 {
		t.Fatal("RefValue lost its reference")
	}
}

func TestHandle_String(t *testing.T) {
	if (Handle{}).String() != "null" {
		t.Fatal("zero handle should print as null")
	}
	if s := (Handle{ref: 4, ctx: 2}).String(); s != "ref#4@2" {
		t.Fatalf("got %q", s)
	}
}
