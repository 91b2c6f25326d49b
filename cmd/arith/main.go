package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"

	"golang.org/x/term"

	"github.com/zephyrtronium/arith"
)

func main() {
	log.SetFlags(0)
	var (
		inname                string
		prec, depth, bits     int
		echo, neg, raw, verbs bool
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.IntVar(&prec, "p", arith.DefaultPrec, "precision of float calculations in bits")
	flag.IntVar(&depth, "depth", arith.DefaultMaxDepth, "maximum nesting depth of expressions")
	flag.IntVar(&bits, "bits", arith.DefaultMaxIntBits, "maximum size of integer results in bits")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&neg, "neg", false, "toggle the sign of each input instead of evaluating it")
	flag.BoolVar(&raw, "raw", false, "print results exactly instead of rounding floats for display")
	flag.BoolVar(&verbs, "v", false, "print error details")
	flag.Parse()
	if prec <= 0 || uint64(prec) > big.MaxPrec {
		log.Fatalf("precision (%d) must be positive and at most %d", prec, uint64(big.MaxPrec))
	}
	if depth <= 0 {
		log.Fatalf("depth (%d) must be positive", depth)
	}
	if bits <= 0 {
		log.Fatalf("integer bits (%d) must be positive", bits)
	}

	c := calc{
		opts:    []arith.Option{arith.Prec(uint(prec)), arith.MaxDepth(depth), arith.MaxIntBits(bits)},
		raw:     raw,
		verbose: verbs,
		echo:    echo,
	}
	do := func(src string) string {
		if neg {
			return c.toggle(src)
		}
		s, _ := c.entry(src)
		return s
	}

	for _, arg := range flag.Args() {
		fmt.Println(do(arg))
	}
	if inname == "" && flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := c.repl(os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f == nil {
		return
	}
	if err := lines(f, os.Stdout, do); err != nil {
		log.Fatal(err)
	}
}

// lines applies do to each non-blank line of in and prints the results.
func lines(in io.Reader, out io.Writer, do func(string) string) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(out, do(sc.Text())); err != nil {
			return err
		}
	}
	return sc.Err()
}

func infile(inname string, std bool) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
