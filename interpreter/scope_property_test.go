package interpreter

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genIdentifier generates script identifiers, excluding the words the
// expression grammar reserves.
func genIdentifier() gopter.Gen {
	return gen.Identifier().SuchThat(func(s string) bool {
		return s != "true" && s != "false"
	})
}

func sameScope(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !av.Equal(bv) {
			return false
		}
	}
	return true
}

// Property-based tests for the call engine's scope save/restore contract:
// after any call returns, the scope equals the scope observed immediately
// before the call, whether the body completed or faulted.

func TestPropertyScopeRestoredAfterCall(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("successful call restores the caller's scope", prop.ForAll(
		func(name string, before int32, inside int32) bool {
			var out bytes.Buffer
			in := New()
			in.SetOutput(&out)

			in.vars[name] = IntValue(int64(before))
			in.funcs["f"] = &Function{
				Name:   "f",
				Params: []string{"p"},
				Body:   []string{"var q = p + 1", "log(q)"},
			}

			saved := in.VarsSnapshot()
			if err := in.callFunction(in.funcs["f"], []string{IntValue(int64(inside)).ToString()}); err != nil {
				return false
			}
			return sameScope(in.VarsSnapshot(), saved)
		},
		genIdentifier(), gen.Int32(), gen.Int32(),
	))

	properties.Property("faulting call still restores the caller's scope", prop.ForAll(
		func(name string, before int32) bool {
			var out bytes.Buffer
			in := New()
			in.SetOutput(&out)

			in.vars[name] = IntValue(int64(before))
			in.funcs["f"] = &Function{
				Name:   "f",
				Params: []string{},
				Body:   []string{"var x = 1", "@@@"},
			}

			saved := in.VarsSnapshot()
			if err := in.callFunction(in.funcs["f"], nil); err == nil {
				return false
			}
			return sameScope(in.VarsSnapshot(), saved)
		},
		genIdentifier(), gen.Int32(),
	))

	properties.Property("arity mismatch never touches the caller's scope", prop.ForAll(
		func(name string, before int32) bool {
			var out bytes.Buffer
			in := New()
			in.SetOutput(&out)

			in.vars[name] = IntValue(int64(before))
			in.funcs["f"] = &Function{
				Name:   "f",
				Params: []string{"a", "b"},
				Body:   []string{"log(a)"},
			}

			saved := in.VarsSnapshot()
			err := in.callFunction(in.funcs["f"], []string{"1"})
			re, ok := err.(*RuntimeError)
			if !ok || re.Kind != ValueError {
				return false
			}
			return sameScope(in.VarsSnapshot(), saved)
		},
		genIdentifier(), gen.Int32(),
	))

	properties.TestingRun(t)
}

func TestPropertyLogDequoting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// log of an unbound quoted literal prints the text with exactly one
	// layer of quotes removed.
	properties.Property("one quote layer stripped", prop.ForAll(
		func(word string) bool {
			var out bytes.Buffer
			in := New()
			in.SetOutput(&out)

			in.handleLog(`log("` + word + `")`)
			return out.String() == word+"\n"
		},
		gen.AlphaString(),
	))

	// log of a bound name prints the value, never the name.
	properties.Property("bound name prints its value", prop.ForAll(
		func(name string, n int32) bool {
			var out bytes.Buffer
			in := New()
			in.SetOutput(&out)

			in.vars[name] = IntValue(int64(n))
			in.handleLog("log(" + name + ")")
			return out.String() == IntValue(int64(n)).ToString()+"\n"
		},
		genIdentifier(), gen.Int32(),
	))

	properties.TestingRun(t)
}
