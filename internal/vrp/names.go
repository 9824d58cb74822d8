package vrp

import "fmt"

func arcName(i, j, k int) string       { return fmt.Sprintf("x_%d_%d_%d", i, j, k) }
func potentialName(i, k int) string    { return fmt.Sprintf("u_%d_%d", i, k) }
func visitName(j int) string           { return fmt.Sprintf("visit_%d", j) }
func flowName(h, k int) string         { return fmt.Sprintf("flow_%d_%d", h, k) }
func depotOutName(k int) string        { return fmt.Sprintf("depot_out_%d", k) }
func depotInName(k int) string         { return fmt.Sprintf("depot_in_%d", k) }
func mtzName(i, j, k int) string       { return fmt.Sprintf("mtz_%d_%d_%d", i, j, k) }
