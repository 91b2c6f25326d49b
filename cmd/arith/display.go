package main

import (
	"strings"

	"github.com/zephyrtronium/arith"
)

// calc holds the settings shared by every entry.
type calc struct {
	opts    []arith.Option
	raw     bool
	verbose bool
	echo    bool
}

// entry evaluates one expression. It returns the text to print and the new
// current entry, which is empty if the expression failed.
func (c *calc) entry(src string) (line, cur string) {
	a, err := arith.ParseString(strings.TrimSpace(src), c.opts...)
	if err != nil {
		return c.fail(err), ""
	}
	r, err := a.Eval(c.opts...)
	if err != nil {
		return c.fail(err), ""
	}
	cur = c.show(r)
	if c.echo {
		return a.String() + " : " + cur, cur
	}
	return cur, cur
}

// toggle negates the value of src. If src doesn't evaluate, the sign is
// toggled textually instead.
func (c *calc) toggle(src string) string {
	cur := strings.TrimSpace(src)
	if cur == "" {
		return ""
	}
	r, err := arith.EvalString(cur, c.opts...)
	if err == nil {
		return c.show(r.Neg())
	}
	if strings.HasPrefix(cur, "-") {
		return cur[1:]
	}
	return "-" + cur
}

func (c *calc) show(v arith.Value) string {
	if c.raw {
		return v.String()
	}
	return format(v)
}

func (c *calc) fail(err error) string {
	if c.verbose {
		return "Error: " + err.Error()
	}
	return "Error"
}

// format renders a result for display. Integral floats lose their fraction;
// other floats are shown to at most ten decimal places.
func format(v arith.Value) string {
	if v.IsInt() {
		return v.String()
	}
	f := v.Float()
	if f.IsInt() {
		i, _ := f.Int(nil)
		return i.String()
	}
	s := f.Text('f', 10)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
