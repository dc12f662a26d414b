package nodelink_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/render/nodelink"
)

const profile = `
{
    name = reactant
    energy = 0
    links-to = ts
}
{
    name = ts
    energy = 20
    column = 2
    links-to = product
}
{
    name = product
    energy = -5
    column = 3
}
`

func ExampleToDOT() {
	d, _ := diagram.ParseText(strings.NewReader(profile))

	dot := nodelink.ToDOT(d, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "REACTANT" -> "TS";
	// "TS" -> "PRODUCT";
}

func ExampleRenderSVG() {
	d, _ := diagram.ParseText(strings.NewReader(profile))

	svg, err := nodelink.RenderSVG(context.Background(), nodelink.ToDOT(d, nodelink.Options{Detailed: true}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz installation
}
