package knapsack

var (
	// testInsecure are parameters used for the sole purpose of fast testing.
	testInsecure = []ParametersLiteral{
		// Unit increments: the private key is 1, 2, 4, ..., 2^(n-1).
		{
			VectorLength: 8,
			MinStep:      1,
			MaxStep:      1,
		},
		{
			VectorLength: 64,
			MinStep:      1,
			MaxStep:      5,
		},
		{
			VectorLength: 130,
			MinStep:      7,
			MaxStep:      1 << 20,
		},
		DefaultParametersLiteral,
	}
)
