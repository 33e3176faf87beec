package pulsesim_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/db47h/pulsesim"
)

func ExampleNetwork_Press() {
	g, err := pulsesim.ReadGraph(strings.NewReader(`
broadcaster -> a, b, c
%a -> b
%b -> c
%c -> inv
&inv -> a`))
	if err != nil {
		log.Fatal(err)
	}
	n := pulsesim.NewNetwork(g)
	t := n.Press()
	low, high := t.Count()
	fmt.Printf("%d low, %d high\n", low, high)
	fmt.Print(t[:4])

	// Output:
	// 8 low, 4 high
	// button -low-> broadcaster
	// broadcaster -low-> a
	// broadcaster -low-> b
	// broadcaster -low-> c
}

func ExampleSolve() {
	g, err := pulsesim.BuildGraph([]string{
		"broadcaster -> a0, b0",
		"%a0 -> a1, ahub",
		"%a1 -> ahub",
		"&ahub -> a0, ainv",
		"&ainv -> join",
		"%b0 -> b1, bhub",
		"%b1 -> b2",
		"%b2 -> bhub",
		"&bhub -> b0, b1, binv",
		"&binv -> join",
		"&join -> rx",
	})
	if err != nil {
		log.Fatal(err)
	}
	r, err := pulsesim.Solve(context.Background(), g, "rx", pulsesim.SolveOptions{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(r.Periods(), r.Presses)

	// Output:
	// map[a0:3 b0:5] 15
}
