package integrators

import (
	"testing"

	"github.com/san-kum/coupledosc/internal/dynamo"
)

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45_Try(b *testing.B) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}
	dx := dyn.Derive(x, 0)
	tol := dynamo.DefaultTolerance()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a := integrator.Try(dyn, x, dx, 0, 0.01, tol)
		x, dx = a.X, a.Dx
	}
}
