package rules

/*
ApplyConwayRules reports whether a cell is alive in the next generation.

	alive, neighbors < 2  -> dies (underpopulation)
	alive, neighbors 2|3  -> lives
	alive, neighbors > 3  -> dies (overpopulation)
	dead,  neighbors == 3 -> born
	dead,  otherwise      -> stays dead
*/
func ApplyConwayRules(neighbors uint8, alive bool) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}
