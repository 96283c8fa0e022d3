package node

import (
	"reflect"
	"testing"
)

func TestParametersAccessors(t *testing.T) {
	p := Parameters{
		"s":      "hello",
		"iFloat": float64(42), // JSON numbers decode as float64
		"iInt":   7,
		"iStr":   " 13 ",
		"bTrue":  true,
		"bStr":   "TRUE",
		"list":   "a, b,,c",
		"listIf": []interface{}{"x", "y"},
	}

	if got := p.String("s"); got != "hello" {
		t.Fatalf("String = %q", got)
	}
	if got := p.String("missing"); got != "" {
		t.Fatalf("String missing = %q", got)
	}
	if got := p.StringOr("missing", "fallback"); got != "fallback" {
		t.Fatalf("StringOr = %q", got)
	}
	if got := p.Int("iFloat"); got != 42 {
		t.Fatalf("Int float = %d", got)
	}
	if got := p.Int("iInt"); got != 7 {
		t.Fatalf("Int int = %d", got)
	}
	if got := p.Int("iStr"); got != 13 {
		t.Fatalf("Int string = %d", got)
	}
	if got := p.Int("missing"); got != 0 {
		t.Fatalf("Int missing = %d", got)
	}
	if !p.Bool("bTrue") || !p.Bool("bStr") || p.Bool("missing") {
		t.Fatal("Bool coercion broken")
	}
	if got := p.StringSlice("list"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("StringSlice = %v", got)
	}
	if got := p.StringSlice("listIf"); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("StringSlice []interface{} = %v", got)
	}
	if got := p.StringSlice("missing"); got != nil {
		t.Fatalf("StringSlice missing = %v", got)
	}
}
