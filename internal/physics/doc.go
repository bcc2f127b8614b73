// Package physics implements Newtonian point-mass gravity.
//
// [Force] is the pairwise force law and [Gravity] the resulting
// [sim.Dynamics]: a system of N mutually attracting point masses in two
// dimensions. The simulator is wired for the classic three-body problem,
// but nothing here assumes N = 3.
package physics
