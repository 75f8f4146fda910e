// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [AdaptiveIntegrator]: embedded pair with error estimate
//   - [Tolerance]: mixed absolute/relative error control
//
// # Example
//
//	dyn := physics.NewCoupledOscillator(1, 10, 8)
//	integ := integrators.NewRK45()
//	s := sim.New(dyn, integ, zerolog.Nop())
//	res, err := s.Run(ctx, x0, grid, opts)
//
// # Thread Safety
//
// States are plain slices. Integrators keep scratch buffers and must not be
// shared between goroutines.
package dynamo
