package pagerank

import (
	"bufio"
	"fmt"
	"log"
	"os"
)

// Params bundles the power-iteration knobs the original hard-codes as
// file-scope consts (DAMPING_FACTOR, NUM_ITERATIONS, and an implicit
// tolerance of 1e-12).
type Params struct {
	Damping    float64
	Iterations int
	Tolerance  float64
}

// DefaultParams matches spec.md §4.1's d=0.85, I=20, τ=1e-12.
func DefaultParams() Params {
	return Params{Damping: 0.85, Iterations: 20, Tolerance: 1e-12}
}

// Run computes the stationary distribution of a damped random walk over g's
// reverse link graph, with dangling-node mass redistributed uniformly each
// iteration (spec.md §4.1). An empty graph yields an empty, non-crashing result.
func Run(g *Graph, p Params) []float64 {
	n := g.N()
	log.Printf("computing pagerank over %d nodes", n)
	if n == 0 {
		return nil
	}

	scores := make([]float64, n)
	newScores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	for iter := 0; iter < p.Iterations; iter++ {
		sinkMass := 0.0
		for j := 0; j < n; j++ {
			if g.OutDegree[j] == 0 {
				sinkMass += scores[j]
			}
		}

		teleport := (1.0 - p.Damping) / float64(n)
		sinkContrib := p.Damping * sinkMass / float64(n)

		diff := 0.0
		for i := 0; i < n; i++ {
			sum := 0.0
			for _, j := range g.InLinks[i] {
				if od := g.OutDegree[j]; od > 0 {
					sum += scores[j] / float64(od)
				}
			}
			newScores[i] = teleport + p.Damping*sum + sinkContrib
			d := newScores[i] - scores[i]
			if d < 0 {
				d = -d
			}
			diff += d
		}

		scores, newScores = newScores, scores
		avgDiff := diff / float64(n)
		log.Printf("iteration %d done, avg diff %g", iter+1, avgDiff)
		if avgDiff < p.Tolerance {
			log.Printf("converged after %d iterations", iter+1)
			break
		}
	}

	renormalize(scores)
	return scores
}

func renormalize(scores []float64) {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum <= 0 {
		return
	}
	for i := range scores {
		scores[i] /= sum
	}
}

// Save writes "real_id,score" lines in scientific notation, one per dense
// node, matching the original's `outfile << scientific`.
func Save(path string, g *Graph, scores []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1024*1024)
	defer w.Flush()

	for i, score := range scores {
		if _, err := fmt.Fprintf(w, "%d,%e\n", g.DenseToReal[i], score); err != nil {
			return err
		}
		if i%10000 == 0 {
			log.Printf("%d scores saved", i)
		}
	}
	return nil
}

// Load reads a pagerank_scores.csv file into a doc_id -> score map. Absent
// keys should be treated by callers as score 0, per spec.md §3.
func Load(path string) (map[int32]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scores := make(map[int32]float64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		comma := -1
		for i := 0; i < len(line); i++ {
			if line[i] == ',' {
				comma = i
				break
			}
		}
		if comma < 0 {
			continue
		}
		var id int32
		var score float64
		if _, err := fmt.Sscanf(line[:comma], "%d", &id); err != nil {
			continue
		}
		if _, err := fmt.Sscanf(line[comma+1:], "%g", &score); err != nil {
			continue
		}
		scores[id] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
