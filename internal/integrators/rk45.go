package integrators

import (
	"math"

	"github.com/san-kum/coupledosc/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// errExponent is -1/(q+1) for the embedded 4th order estimate.
const errExponent = -1.0 / 5.0

type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
	stage    [6]dynamo.State
	scratch  dynamo.State
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) ensureScratch(n int) {
	if len(r.scratch) != n {
		for i := range r.stage {
			r.stage[i] = make(dynamo.State, n)
		}
		r.scratch = make(dynamo.State, n)
	}
}

// Step takes one unchecked 5th order step.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	a := r.Try(dyn, x, dyn.Derive(x, t), t, dt, dynamo.DefaultTolerance())
	return a.X
}

// Try performs one Dormand-Prince trial step from (t, x) with derivative dx
// already evaluated at x. The returned derivative is evaluated at the new
// state and can be fed to the next Try (first same as last).
func (r *RK45) Try(dyn dynamo.System, x, dx dynamo.State, t, dt float64, tol dynamo.Tolerance) dynamo.Attempt {
	n := len(x)
	r.ensureScratch(n)

	k1 := dx
	s := r.scratch

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*b21*k1[i]
	}
	k2 := copyInto(r.stage[1], dyn.Derive(s, t+a2*dt))

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := copyInto(r.stage[2], dyn.Derive(s, t+a3*dt))

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := copyInto(r.stage[3], dyn.Derive(s, t+a4*dt))

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := copyInto(r.stage[4], dyn.Derive(s, t+a5*dt))

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := copyInto(r.stage[5], dyn.Derive(s, t+dt))

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := dyn.Derive(xNew, t+dt)

	sum := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		e := errEst / tol.Scale(x[i], xNew[i])
		sum += e * e
	}
	errNorm := 0.0
	if n > 0 {
		errNorm = math.Sqrt(sum / float64(n))
	}
	if !xNew.IsValid() {
		errNorm = math.Inf(1)
	}

	return dynamo.Attempt{X: xNew, Dx: k7, Error: errNorm, Evals: 6}
}

// NextStep proposes the step size after a trial with the given error norm.
// Rejected trials (errNorm > 1) always shrink the step.
func (r *RK45) NextStep(dt, errNorm float64) float64 {
	switch {
	case math.IsNaN(errNorm) || math.IsInf(errNorm, 1):
		return dt * r.minScale
	case errNorm == 0:
		return dt * r.maxScale
	case errNorm > 1:
		return dt * math.Max(r.minScale, r.safety*math.Pow(errNorm, errExponent))
	default:
		return dt * math.Min(r.maxScale, math.Max(1, r.safety*math.Pow(errNorm, errExponent)))
	}
}

// InitialStep picks a first step from the local behavior of the solution,
// after Hairer, Norsett & Wanner (II.4). span bounds the result.
func (r *RK45) InitialStep(dyn dynamo.System, x, dx dynamo.State, t, span float64, tol dynamo.Tolerance) float64 {
	n := len(x)
	if n == 0 {
		return span
	}

	rms := func(v func(i int) float64) float64 {
		sum := 0.0
		for i := 0; i < n; i++ {
			e := v(i) / tol.Scale(x[i], x[i])
			sum += e * e
		}
		return math.Sqrt(sum / float64(n))
	}

	d0 := rms(func(i int) float64 { return x[i] })
	d1 := rms(func(i int) float64 { return dx[i] })

	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, span)

	x1 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x1[i] = x[i] + h0*dx[i]
	}
	f1 := dyn.Derive(x1, t+h0)
	d2 := rms(func(i int) float64 { return f1[i] - dx[i] }) / h0

	var h1 float64
	if d1 <= 1e-15 && d2 <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1.0/5.0)
	}

	return math.Min(math.Min(100*h0, h1), span)
}

func copyInto(dst, src dynamo.State) dynamo.State {
	copy(dst, src)
	return dst
}
