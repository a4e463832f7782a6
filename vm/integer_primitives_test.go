package vm

import "testing"

func dispatchInt(t *testing.T, in *Interp, recv int64, selector string, args ...*Object) (*Object, error) {
	t.Helper()
	return in.dispatch(objReceiver(NewInteger(recv)), selector, args, false)
}

func TestIntegerArithmetic(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	cases := []struct {
		selector string
		recv     int64
		arg      int64
		want     int64
	}{
		{"plus:", 3, 4, 7},
		{"plus:", -3, 4, 1},
		{"minus:", 10, 4, 6},
		{"minus:", 4, 10, -6},
		{"multiplyBy:", 6, 7, 42},
		{"multiplyBy:", -6, 7, -42},
	}
	for _, c := range cases {
		got, err := dispatchInt(t, in, c.recv, c.selector, NewInteger(c.arg))
		if err != nil {
			t.Errorf("%d %s %d failed: %v", c.recv, c.selector, c.arg, err)
			continue
		}
		if got.Int() != c.want {
			t.Errorf("%d %s %d = %d, want %d", c.recv, c.selector, c.arg, got.Int(), c.want)
		}
	}
}

func TestDivByTruncatesTowardZero(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	cases := []struct {
		recv, arg, want int64
	}{
		{7, 2, 3},
		{-7, 2, -3},
		{7, -2, -3},
		{-7, -2, 3},
		{6, 3, 2},
	}
	for _, c := range cases {
		got, err := dispatchInt(t, in, c.recv, "divBy:", NewInteger(c.arg))
		if err != nil {
			t.Errorf("%d divBy: %d failed: %v", c.recv, c.arg, err)
			continue
		}
		if got.Int() != c.want {
			t.Errorf("%d divBy: %d = %d, want %d", c.recv, c.arg, got.Int(), c.want)
		}
	}
}

func TestDivByZeroFails(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	_, err := dispatchInt(t, in, 7, "divBy:", NewInteger(0))
	wantCode(t, err, CodeBadOperand)
}

func TestArithmeticNeedsIntegerArgument(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	for _, sel := range []string{"plus:", "minus:", "multiplyBy:", "divBy:", "greaterThan:"} {
		_, err := dispatchInt(t, in, 1, sel, NewString("two"))
		wantCode(t, err, CodeBadOperand)
	}
}

func TestIntegerGreaterThan(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	cases := []struct {
		recv, arg int64
		want      *Object
	}{
		{5, 3, True},
		{3, 5, False},
		{3, 3, False},
	}
	for _, c := range cases {
		got, err := dispatchInt(t, in, c.recv, "greaterThan:", NewInteger(c.arg))
		if err != nil || got != c.want {
			t.Errorf("%d greaterThan: %d = %v, %v, want %v", c.recv, c.arg, got, err, c.want)
		}
	}
}

func TestIntegerEqualTo(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")

	got, _ := dispatchInt(t, in, 4, "equalTo:", NewInteger(4))
	if got != True {
		t.Errorf("4 equalTo: 4 = %v, want true", got)
	}
	got, _ = dispatchInt(t, in, 4, "equalTo:", NewInteger(5))
	if got != False {
		t.Errorf("4 equalTo: 5 = %v, want false", got)
	}
	// A non-integer is never equal, not an error.
	got, err := dispatchInt(t, in, 4, "equalTo:", NewString("4"))
	if err != nil || got != False {
		t.Errorf("4 equalTo: '4' = %v, %v, want false", got, err)
	}
}

func TestIntegerAsString(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	cases := map[int64]string{0: "0", 42: "42", -17: "-17"}
	for n, want := range cases {
		got, err := dispatchInt(t, in, n, "asString")
		if err != nil || got.Str() != want {
			t.Errorf("%d asString = %v, %v, want %q", n, got, err, want)
		}
	}
}

func TestIntegerAsIntegerAnswersReceiver(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	recv := NewInteger(9)
	got, err := in.dispatch(objReceiver(recv), "asInteger", nil, false)
	if err != nil || got != recv {
		t.Errorf("asInteger = %v, %v, want the receiver", got, err)
	}
}

func TestIsNumber(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	got, err := dispatchInt(t, in, 1, "isNumber")
	if err != nil || got != True {
		t.Errorf("isNumber = %v, %v, want true", got, err)
	}
}

func TestTimesRepeatSumsIterationNumbers(t *testing.T) {
	// Sums 1..3 through an attribute, then prints sum and the answer.
	prog := mainProg(
		set("a", sendTo(varRef("self"), "acc:", intLit("0"))),
		set("r", sendTo(intLit("3"), "timesRepeat:", blockExpr([]string{"i"},
			set("a", sendTo(varRef("self"), "acc:",
				sendTo(sendTo(varRef("self"), "acc"), "plus:", varRef("i")))),
		))),
		set("p", sendTo(sendTo(sendTo(varRef("self"), "acc"), "asString"), "print")),
		set("q", sendTo(sendTo(varRef("r"), "asString"), "print")),
	)
	out, err := runProgram(t, prog, "")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "63" {
		t.Errorf("output = %q, want %q", out, "63")
	}
}

func TestTimesRepeatZeroAndNegative(t *testing.T) {
	in, _ := newTestInterp(t, nil, "")
	// The body would fail if it ran; value: on an Integer is not understood.
	for _, n := range []int64{0, -2} {
		got, err := dispatchInt(t, in, n, "timesRepeat:", NewInteger(1))
		if err != nil {
			t.Errorf("%d timesRepeat: failed: %v", n, err)
			continue
		}
		if got.Int() != n {
			t.Errorf("%d timesRepeat: = %v, want the receiver", n, got)
		}
	}
}
