package vrp

import "optiserve/internal/engine"

// assemble reconstructs each vehicle's route from the solved arc-selection
// variables: start at the depot, repeatedly follow the unique outgoing
// arc whose value is above 0.5, stop at the depot or a dead end, and discard any route that
// never leaves the depot. Ties among candidate arcs (which an integral
// solution should not produce, but floating-point noise near 0.5 could)
// are broken by ascending destination index so output is reproducible.
func assemble(bm *builtModel, p *Problem, m *engine.Model) Result {
	n := len(p.Locations)
	k := p.Vehicles
	d := p.DepotIdx

	var routes [][]int
	var routeDist []float64
	total := 0.0

	for veh := 0; veh < k; veh++ {
		stops := []int{d}
		dist := 0.0
		current := d
		visited := make(map[int]bool)

		for steps := 0; steps < n+1; steps++ {
			next := -1
			for j := 0; j < n; j++ {
				if j == current {
					continue
				}
				idx, ok := bm.x[arcKey{current, j, veh}]
				if !ok {
					continue
				}
				if m.VarValue(idx) > 0.5 {
					next = j
					break // j iterates in ascending order already
				}
			}
			if next == -1 {
				break
			}
			stops = append(stops, next)
			dist += bm.dist[current][next]
			current = next
			if current == d {
				break
			}
			if visited[current] {
				break // defensive: malformed solution, avoid an infinite loop
			}
			visited[current] = true
		}

		if len(stops) > 2 && stops[len(stops)-1] == d {
			routes = append(routes, stops)
			routeDist = append(routeDist, dist)
			total += dist
		}
	}

	return Result{
		Status:        StatusOptimal,
		Routes:        routes,
		RouteDistance: routeDist,
		TotalDistance: total,
	}
}
