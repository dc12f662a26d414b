package levels_test

import (
	"fmt"

	"github.com/matzehuels/energylevels/pkg/core/levels"
)

func ExampleLayout() {
	reg := levels.NewRegistry()
	_, _ = reg.Add("A", 1.00, 0)
	_, _ = reg.Add("B", 1.02, 0)
	_, _ = reg.Add("C", 3.00, 1)

	params := levels.DefaultParams()
	params.AxisUpperBound = 3.5

	res, err := levels.Layout(reg, params)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, p := range reg.Points() {
		fmt.Printf("%s %.3f\n", p.Key(), p.LabelPosition())
	}
	fmt.Println(res.Converged())
	// Output:
	// A 0.902
	// B 1.070
	// C 3.000
	// true
}

func ExampleDetect() {
	reg := levels.NewRegistry()
	_, _ = reg.Add("low", 0.00, 0)
	_, _ = reg.Add("mid", 0.05, 0)
	_, _ = reg.Add("high", 1.00, 0)

	d := levels.Detect(reg.Points(), levels.DefaultMinSpacing)
	for i, p := range d.Points {
		fmt.Println(p.Key(), d.Crowded[i])
	}
	fmt.Println(d.Runs())
	// Output:
	// low true
	// mid true
	// high false
	// [{0 1}]
}
