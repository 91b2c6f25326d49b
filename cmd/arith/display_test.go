package main

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/arith"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"7", "7"},
		{"-7", "-7"},
		{"2 ** 100", "1267650600228229401496703205376"},
		{"4 / 2", "2"},
		{"10 / 4", "2.5"},
		{"1 / 3", "0.3333333333"},
		{"-1 / 3", "-0.3333333333"},
		{"2 / 3", "0.6666666667"},
		{"0.1 + 0.2", "0.3"},
		{"2 ** 0.5", "1.4142135624"},
		{"-0.0", "0"},
		{"2 ** -40", "0"},
		{"10.0 ** 20", "100000000000000000000"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			v, err := arith.Evaluate(c.src)
			if err != nil {
				t.Fatal(err)
			}
			if got := format(v); got != c.want {
				t.Errorf("%q formatted as %q, want %q", c.src, got, c.want)
			}
		})
	}
}

func TestEntry(t *testing.T) {
	cases := []struct {
		name string
		c    calc
		src  string
		line string
		cur  string
	}{
		{"int", calc{}, "2 + 2", "4", "4"},
		{"float", calc{}, "1 / 4", "0.25", "0.25"},
		{"spaces", calc{}, "  1 + 1\t", "2", "2"},
		{"raw", calc{raw: true}, "4 / 2", "2.0", "2.0"},
		{"echo", calc{echo: true}, "1+2", "([1] + [2]) : 3", "3"},
		{"error", calc{}, "10 / 0", "Error", ""},
		{"empty", calc{}, "", "Error", ""},
		{"verbose", calc{verbose: true}, "10 / 0", "Error: 4: 10 / 0: division by zero", ""},
		{"opts", calc{opts: []arith.Option{arith.MaxIntBits(8)}}, "2 ** 10", "Error", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			line, cur := c.c.entry(c.src)
			if line != c.line {
				t.Errorf("%q printed %q, want %q", c.src, line, c.line)
			}
			if cur != c.cur {
				t.Errorf("%q left entry %q, want %q", c.src, cur, c.cur)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"5", "-5"},
		{"-3", "3"},
		{" 2 ", "-2"},
		{"1 / 4", "-0.25"},
		{"2 - 5", "3"},
		{"0", "0"},
		{"1 +", "-1 +"},
		{"-1 +", "1 +"},
		{"10 / 0", "-10 / 0"},
		{"", ""},
		{"   ", ""},
	}
	var c calc
	for _, cs := range cases {
		if got := c.toggle(cs.src); got != cs.want {
			t.Errorf("toggling %q gave %q, want %q", cs.src, got, cs.want)
		}
	}
}

func TestLines(t *testing.T) {
	var c calc
	var out strings.Builder
	in := strings.NewReader("1+1\n\n  \n10/4\n1/0\n")
	err := lines(in, &out, func(s string) string {
		line, _ := c.entry(s)
		return line
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "2\n2.5\nError\n"; got != want {
		t.Errorf("wrong output: got %q, want %q", got, want)
	}
}
