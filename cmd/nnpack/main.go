// nnpack is a CLI utility for authoring and inspecting neural weight
// bundles (.nnw files) for the terrain and color networks.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/neuraterra/internal/engine/neural"
	"github.com/Faultbox/neuraterra/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "gen":
		cmdGen(args)
	case "inspect":
		cmdInspect(args)
	case "verify":
		cmdVerify(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`nnpack - neural weight bundle utility

Usage:
  nnpack <command> [options]

Commands:
  gen -kind <terrain|color> [-profile <encoded|raw>] [-seed N] [-scale S] <out.nnw>
      Generate a randomly initialized weight bundle
  inspect <file.nnw>
      Show bundle metadata and per-layer weight statistics
  verify <file.nnw>
      Validate a bundle against its declared topology

Examples:
  nnpack gen -kind terrain -profile encoded assets/terrain.nnw
  nnpack gen -kind color -profile raw -seed 7 assets/color.nnw
  nnpack inspect assets/terrain.nnw`)
}

func cmdGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	kindName := fs.String("kind", "", "Network kind: terrain or color")
	profileName := fs.String("profile", "encoded", "Network profile: encoded or raw")
	seed := fs.Int64("seed", 1, "Random seed")
	scale := fs.Float64("scale", 1.0, "Multiplier on the Glorot init range")
	fs.Parse(args)

	if fs.NArg() < 1 || *kindName == "" {
		fmt.Fprintln(os.Stderr, "Usage: nnpack gen -kind <terrain|color> [options] <out.nnw>")
		os.Exit(1)
	}

	kind, topo, err := resolveNetwork(*kindName, *profileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	profile, _ := parseProfile(*profileName)
	weights := generateWeights(topo, *seed, *scale)

	data, err := formats.WriteNNW(&formats.NNW{
		Kind:    kind,
		Profile: profile,
		Weights: weights,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding bundle: %v\n", err)
		os.Exit(1)
	}

	outPath := fs.Arg(0)
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %s/%s, %d weights (%d bytes)\n",
		outPath, kind, profile, len(weights), len(data))
}

// generateWeights builds Glorot-uniform initialized layer matrices and
// flattens them in the runtime layout: per layer an In x Out row-major
// matrix followed by the bias vector, biases zero.
func generateWeights(topo neural.Topology, seed int64, scale float64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, 0, topo.WeightCount())

	for _, layer := range topo {
		limit := scale * glorotLimit(layer.In, layer.Out)

		m := mat.NewDense(layer.In, layer.Out, nil)
		for i := 0; i < layer.In; i++ {
			for j := 0; j < layer.Out; j++ {
				m.Set(i, j, (rng.Float64()*2-1)*limit)
			}
		}

		for _, v := range m.RawMatrix().Data {
			out = append(out, float32(v))
		}
		for j := 0; j < layer.Out; j++ {
			out = append(out, 0)
		}
	}
	return out
}

func glorotLimit(in, out int) float64 {
	return math.Sqrt(6.0 / float64(in+out))
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: nnpack inspect <file.nnw>")
		os.Exit(1)
	}

	bundle, topo := loadBundle(args[0])

	fmt.Printf("Bundle:  %s\n", args[0])
	fmt.Printf("Kind:    %s\n", bundle.Kind)
	fmt.Printf("Profile: %s\n", bundle.Profile)
	fmt.Printf("Weights: %d\n", len(bundle.Weights))
	fmt.Println()
	fmt.Println("Layers:")

	off := 0
	for i, layer := range topo {
		n := layer.WeightCount()
		chunk := make([]float64, n)
		for k, v := range bundle.Weights[off : off+n] {
			chunk[k] = float64(v)
		}
		off += n

		mean, std := stat.MeanStdDev(chunk, nil)
		fmt.Printf("  %d: %3dx%-3d  mean %+.4f  std %.4f  min %+.4f  max %+.4f\n",
			i, layer.In, layer.Out, mean, std, floats.Min(chunk), floats.Max(chunk))
	}
}

func cmdVerify(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: nnpack verify <file.nnw>")
		os.Exit(1)
	}

	bundle, topo := loadBundle(args[0])

	if len(bundle.Weights) != topo.WeightCount() {
		fmt.Fprintf(os.Stderr, "Invalid: %d weights, topology requires %d\n",
			len(bundle.Weights), topo.WeightCount())
		os.Exit(1)
	}

	if _, err := neural.NewWeightStore(topo, bundle.Weights); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}

	chunk := make([]float64, len(bundle.Weights))
	for i, v := range bundle.Weights {
		chunk[i] = float64(v)
	}
	if floats.HasNaN(chunk) {
		fmt.Fprintln(os.Stderr, "Invalid: bundle contains NaN weights")
		os.Exit(1)
	}

	fmt.Printf("OK: %s/%s, %d weights across %d layers\n",
		bundle.Kind, bundle.Profile, len(bundle.Weights), len(topo))
}

// loadBundle reads and parses a bundle, resolving its topology from the
// header metadata. Exits on any error.
func loadBundle(path string) (*formats.NNW, neural.Topology) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bundle, err := formats.ParseNNW(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}

	var topo neural.Topology
	switch bundle.Kind {
	case formats.NetworkTerrain:
		topo = neural.TerrainTopology(bundle.Profile)
	case formats.NetworkColor:
		topo = neural.ColorTopology(bundle.Profile)
	}
	return bundle, topo
}

func resolveNetwork(kindName, profileName string) (formats.NetworkKind, neural.Topology, error) {
	profile, err := parseProfile(profileName)
	if err != nil {
		return 0, nil, err
	}

	switch kindName {
	case "terrain":
		return formats.NetworkTerrain, neural.TerrainTopology(profile), nil
	case "color":
		return formats.NetworkColor, neural.ColorTopology(profile), nil
	default:
		return 0, nil, fmt.Errorf("unknown network kind %q", kindName)
	}
}

func parseProfile(name string) (formats.Profile, error) {
	switch name {
	case "raw":
		return formats.ProfileRaw, nil
	case "encoded":
		return formats.ProfileEncoded, nil
	default:
		return 0, fmt.Errorf("unknown profile %q", name)
	}
}
