package automaton_test

import (
	"context"
	"fmt"

	"github.com/aretw0/automaton"
	"github.com/aretw0/automaton/pkg/domain"
)

func ExampleRunString() {
	d := domain.NewDefinition(
		[]string{"q0", "q1"},
		[]string{"0", "1"},
		"q0",
		[]string{"q1"},
		map[string]map[string]string{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q1", "1": "q1"},
		},
	)

	res, err := automaton.RunString(d, "001")
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Verdict(), res.FinalState)
	// Output: ACCEPTED q1
}

func ExampleEnumerate() {
	d := domain.NewDefinition(
		[]string{"q0", "q1"},
		[]string{"0", "1"},
		"q0",
		[]string{"q1"},
		map[string]map[string]string{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q1", "1": "q1"},
		},
	)

	words, err := automaton.Enumerate(d, 3, 3)
	if err != nil {
		panic(err)
	}
	fmt.Println(words)
	// Output: [1 01 10]
}

func ExampleWorkbench() {
	ctx := context.Background()
	wb := automaton.NewWorkbench()
	if err := wb.LoadExample(ctx, "ends-in-01"); err != nil {
		panic(err)
	}

	for _, in := range []string{"101", "110"} {
		res, _ := wb.RunString(ctx, in)
		fmt.Println(in, res.Verdict())
	}
	// Output:
	// 101 ACCEPTED
	// 110 REJECTED
}
