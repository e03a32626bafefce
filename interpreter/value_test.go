package interpreter

import "testing"

func TestValueToString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{IntValue(5), "5"},
		{IntValue(-12), "-12"},
		{FloatValue(3.5), "3.5"},
		{FloatValue(2), "2"},
		{StringValue("hi"), "hi"},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{NullValue(), "null"},
	}
	for _, c := range cases {
		if got := c.v.ToString(); got != c.want {
			t.Fatalf("ToString(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestValueEqual(t *testing.T) {
	if !IntValue(2).Equal(FloatValue(2.0)) {
		t.Fatal("2 and 2.0 must compare equal")
	}
	if IntValue(2).Equal(StringValue("2")) {
		t.Fatal("int and string must not compare equal")
	}
	if !NullValue().Equal(NullValue()) {
		t.Fatal("null equals null")
	}
	if !StringValue("a").Equal(StringValue("a")) || StringValue("a").Equal(StringValue("b")) {
		t.Fatal("string equality broken")
	}
}
