// Package builder generates deterministic synthetic street networks for
// tests, benchmarks and the CLI generate command.
//
// Components:
//
//   - Orchestration:
//     – BuildNetwork(nopts, bopts, cons...): create a network and apply
//     constructors in order.
//     – Constructor: a topology closure (Grid, Path, Cycle, Star,
//     RandomSparse).
//   - Layout options:
//     – WithSpacing, WithOrigin: junction placement.
//     – WithDetour: edge lengths above the straight line, so straight-line
//     search pruning stays valid.
//   - Attributes:
//     – WithNodeWeightFn and the WeightFn distributions (Constant,
//     Uniform, Normal, Exponential) for junction weights.
//     – WithCost(name, fn) for accumulator contributions.
//     – WithNameScheme / WithStreetNames for edge labels.
//   - Locations(net, opts...): one origin/destination per street.
//   - Determinism: WithSeed / WithRand fix every random draw.
//
// Guarantees:
//
//   - Edge lengths are never shorter than the straight-line distance
//     between their endpoints.
//   - Fast-fail on invalid option parameters via panics in option
//     constructors; constructors return sentinel errors.
package builder
