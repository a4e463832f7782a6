package vm

import "testing"

func TestIdenticalTo(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")

	a := NewInstance("Main")
	got, err := in.dispatch(objReceiver(a), "identicalTo:", []*Object{a}, false)
	if err != nil || got != True {
		t.Errorf("self identicalTo: self = %v, %v, want true", got, err)
	}

	b := NewInstance("Main")
	got, _ = in.dispatch(objReceiver(a), "identicalTo:", []*Object{b}, false)
	if got != False {
		t.Errorf("distinct instances identicalTo: = %v, want false", got)
	}

	// Two equal-valued integers are distinct objects.
	got, _ = in.dispatch(objReceiver(NewInteger(5)), "identicalTo:", []*Object{NewInteger(5)}, false)
	if got != False {
		t.Errorf("5 identicalTo: 5 = %v, want false", got)
	}

	// Singletons are shared, so they are identical to themselves.
	got, _ = in.dispatch(objReceiver(Nil), "identicalTo:", []*Object{Nil}, false)
	if got != True {
		t.Errorf("nil identicalTo: nil = %v, want true", got)
	}
}

func TestObjectEqualToIsIdentity(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	a := NewInstance("Main")
	b := NewInstance("Main")

	got, err := in.dispatch(objReceiver(a), "equalTo:", []*Object{b}, false)
	if err != nil || got != False {
		t.Errorf("equalTo: distinct instance = %v, %v, want false", got, err)
	}
	got, _ = in.dispatch(objReceiver(a), "equalTo:", []*Object{a}, false)
	if got != True {
		t.Errorf("equalTo: same instance = %v, want true", got)
	}
}

func TestObjectAsStringIsEmpty(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	got, err := in.dispatch(objReceiver(NewInstance("Main")), "asString", nil, false)
	if err != nil || got.Kind() != KindString || got.Str() != "" {
		t.Errorf("asString = %v, %v, want ''", got, err)
	}
}

func TestTypePredicates(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	blk := NewBlock(blockOf(nil), nil)
	cases := []struct {
		name     string
		recv     *Object
		selector string
		want     *Object
	}{
		{"integer isNumber", NewInteger(1), "isNumber", True},
		{"string isNumber", NewString("1"), "isNumber", False},
		{"string isString", NewString("x"), "isString", True},
		{"integer isString", NewInteger(1), "isString", False},
		{"block isBlock", blk, "isBlock", True},
		{"instance isBlock", NewInstance("Main"), "isBlock", False},
		{"nil isNil", Nil, "isNil", True},
		{"integer isNil", NewInteger(0), "isNil", False},
		{"true isNil", True, "isNil", False},
	}
	for _, c := range cases {
		got, err := in.dispatch(objReceiver(c.recv), c.selector, nil, false)
		if err != nil {
			t.Errorf("%s failed: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNilAsString(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	got, err := in.dispatch(objReceiver(Nil), "asString", nil, false)
	if err != nil || got.Str() != "nil" {
		t.Errorf("nil asString = %v, %v, want 'nil'", got, err)
	}
}
