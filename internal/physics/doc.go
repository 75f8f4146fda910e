// Package physics provides the coupled-spring oscillator model.
//
// [CoupledOscillator] implements [dynamo.System], [dynamo.Hamiltonian] and
// [dynamo.Configurable]. Two masses m are each anchored by a spring k1 and
// joined by a coupling spring k2; exciting one mass makes energy slosh
// between them at the beat frequency (ω_anti - ω_in)/2.
//
// # Energy Conservation
//
// The model is undamped, so energy drift measures integrator error:
//
//	dyn := physics.NewCoupledOscillator(1, 10, 8)
//	e0 := dyn.Energy(x0)
package physics
