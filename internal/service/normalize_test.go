package service

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mustDecimal(t *testing.T, s string) primitive.Decimal128 {
	t.Helper()
	d, err := primitive.ParseDecimal128(s)
	if err != nil {
		t.Fatalf("ParseDecimal128(%q): %v", s, err)
	}
	return d
}

func TestCleanDecimalsIntegral(t *testing.T) {
	got := CleanDecimals(mustDecimal(t, "25"))
	if got != int64(25) {
		t.Errorf("CleanDecimals(25) = %#v, want int64(25)", got)
	}
}

func TestCleanDecimalsFractional(t *testing.T) {
	got := CleanDecimals(mustDecimal(t, "25.5"))
	if got != 25.5 {
		t.Errorf("CleanDecimals(25.5) = %#v, want 25.5", got)
	}
}

func TestCleanDecimalsNested(t *testing.T) {
	in := bson.M{
		"total": mustDecimal(t, "99.9"),
		"items": bson.A{
			bson.M{"qty": mustDecimal(t, "2"), "name": "pizza"},
		},
		"note": "sin cambios",
	}

	got, ok := CleanDecimals(in).(bson.M)
	if !ok {
		t.Fatalf("CleanDecimals devolvió %T, want bson.M", CleanDecimals(in))
	}
	if got["total"] != 99.9 {
		t.Errorf("total = %#v, want 99.9", got["total"])
	}
	if got["note"] != "sin cambios" {
		t.Errorf("note = %#v, want passthrough", got["note"])
	}
	items := got["items"].(bson.A)
	item := items[0].(bson.M)
	if item["qty"] != int64(2) {
		t.Errorf("qty = %#v, want int64(2)", item["qty"])
	}
}

func TestCleanDecimalsIdempotent(t *testing.T) {
	in := bson.M{
		"total": mustDecimal(t, "12.75"),
		"items": bson.A{mustDecimal(t, "3"), "x", 1.5},
	}
	once := CleanDecimals(in)
	twice := CleanDecimals(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("CleanDecimals no es idempotente: %#v vs %#v", once, twice)
	}
}

func TestCleanDecimalsScalarPassthrough(t *testing.T) {
	for _, v := range []interface{}{"hola", 7, 7.5, true, nil} {
		if got := CleanDecimals(v); got != v {
			t.Errorf("CleanDecimals(%#v) = %#v, want unchanged", v, got)
		}
	}
}

func TestTotalToFloat(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
	}{
		{mustDecimal(t, "25.5"), 25.5},
		{int32(10), 10},
		{int64(3), 3},
		{4.25, 4.25},
		{nil, 0},
		{"no es número", 0},
	}
	for _, c := range cases {
		if got := totalToFloat(c.in); got != c.want {
			t.Errorf("totalToFloat(%#v) = %v, want %v", c.in, got, c.want)
		}
	}
}
