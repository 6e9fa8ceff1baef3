package cli

import (
	"github.com/spf13/cobra"

	"lattice-pricer/internal/lattice"
)

// maxPrintedSteps caps the tree command's lattice size; a printed tree
// larger than this is unreadable anyway.
const maxPrintedSteps = 12

func newTreeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the lattice for inspection",
		Long: `Build, calibrate and value a small lattice, then print every node:
underlying price, transition probabilities and option value. Intended
for debugging and teaching; steps are capped at 12.`,
		Example: `  pricer tree --spot 100 --strike 100 --rate 0.05 --vol 0.2 --maturity 2027-08-31 --steps 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			market, params, product, err := parseContract(cmd)
			if err != nil {
				output.Error("Invalid inputs: %v", err)
				return err
			}
			if params.Steps > maxPrintedSteps {
				output.Warning("Capping printed tree at %d steps", maxPrintedSteps)
				params.Steps = maxPrintedSteps
			}

			price, tree, err := app.Pricer.PriceWithLattice(market, params, product)
			if err != nil {
				output.Error("Pricing failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(treeView(tree, price))
			}

			output.Bold("%s  price %.4f", product.String(), price)
			for i := range tree.Layers {
				layer := &tree.Layers[i]
				output.Println()
				output.Info("layer %d  (dt=%.6f)", i, tree.DeltaT)
				for offset := layer.Index; offset >= -layer.Index; offset-- {
					if i < tree.Steps() {
						up, mid, down := layer.Probabilities(offset)
						output.Printf("  [%+3d] S=%10.4f  V=%10.4f  p=(%.4f %.4f %.4f) -> mid %+d\n",
							offset, layer.Price(offset), layer.Value(offset), up, mid, down,
							layer.MidChildOffset(offset))
					} else {
						output.Printf("  [%+3d] S=%10.4f  V=%10.4f\n",
							offset, layer.Price(offset), layer.Value(offset))
					}
				}
			}
			return nil
		},
	}

	addContractFlags(cmd, 4)

	return cmd
}

// treeView flattens the lattice into a JSON-friendly structure.
func treeView(t *lattice.Lattice, price float64) map[string]interface{} {
	layers := make([]map[string]interface{}, len(t.Layers))
	for i := range t.Layers {
		layer := &t.Layers[i]
		nodes := make([]map[string]interface{}, 0, layer.Nodes())
		for offset := -layer.Index; offset <= layer.Index; offset++ {
			node := map[string]interface{}{
				"offset": offset,
				"price":  layer.Price(offset),
				"value":  layer.Value(offset),
			}
			if i < t.Steps() {
				up, mid, down := layer.Probabilities(offset)
				node["p_up"] = up
				node["p_mid"] = mid
				node["p_down"] = down
				node["mid_child"] = layer.MidChildOffset(offset)
			}
			nodes = append(nodes, node)
		}
		layers[i] = map[string]interface{}{"index": i, "nodes": nodes}
	}
	return map[string]interface{}{
		"price":    price,
		"delta_t":  t.DeltaT,
		"alpha":    t.Alpha,
		"discount": t.Discount,
		"layers":   layers,
	}
}
