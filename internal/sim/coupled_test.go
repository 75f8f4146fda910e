package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/san-kum/coupledosc/internal/dynamo"
	"github.com/san-kum/coupledosc/internal/integrators"
	"github.com/san-kum/coupledosc/internal/physics"
	"github.com/san-kum/coupledosc/internal/sim"
)

func solve(osc *physics.CoupledOscillator, x0 dynamo.State, t0, t1 float64, n int) *sim.Result {
	s := sim.New(osc, integrators.NewRK45(), zerolog.Nop())
	res, err := s.Run(context.Background(), x0, sim.Linspace(t0, t1, n), sim.DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	return res
}

var _ = Describe("Coupled oscillator trajectories", func() {
	var (
		osc *physics.CoupledOscillator
		x0  dynamo.State
		res *sim.Result
	)

	BeforeEach(func() {
		osc = physics.NewCoupledOscillator(1, 10.0, 8.0)
		x0 = dynamo.State{1.75, 0, 0, 0}
		res = solve(osc, x0, 0, 60, 1000)
	})

	It("samples exactly N strictly increasing times spanning the interval", func() {
		series := res.Series
		Expect(series.Len()).To(Equal(1000))
		Expect(series.T[0]).To(Equal(0.0))
		Expect(series.T[999]).To(Equal(60.0))
		for i := 1; i < series.Len(); i++ {
			Expect(series.T[i]).To(BeNumerically(">", series.T[i-1]))
		}
		Expect(series.Validate()).To(Succeed())
	})

	It("starts from the initial state at rest", func() {
		first := res.Series.States[0]
		Expect(first[0]).To(Equal(1.75))
		Expect(first[1]).To(Equal(0.0))
		Expect(first[2]).To(Equal(0.0))
		Expect(first[3]).To(Equal(0.0))
	})

	It("conserves energy", func() {
		e0 := osc.Energy(res.Series.States[0])
		for _, x := range res.Series.States {
			Expect(osc.Energy(x)).To(BeNumerically("~", e0, 1e-5*e0))
		}
		Expect(res.EnergyDrift).To(BeNumerically("<", 1e-5))
	})

	It("tracks the closed-form normal-mode solution", func() {
		for i, tm := range res.Series.T {
			exact := osc.Exact(x0, tm)
			Expect(res.Series.States[i][0]).To(BeNumerically("~", exact[0], 1e-4))
			Expect(res.Series.States[i][2]).To(BeNumerically("~", exact[2], 1e-4))
		}
	})

	It("transfers energy between the masses", func() {
		x2 := res.Series.Trace("mass 2", 2)
		lo, hi := x2.Range()
		Expect(hi).To(BeNumerically(">", 0.5))
		Expect(lo).To(BeNumerically("<", -0.5))

		// Beat envelope: mass 1 amplitude drops well below its start at
		// half a beat period.
		wIn, wAnti := osc.NormalModes()
		halfBeat := math.Pi / (wAnti - wIn)
		peak := 0.0
		for i, tm := range res.Series.T {
			if math.Abs(tm-halfBeat) < 0.5 {
				peak = math.Max(peak, math.Abs(res.Series.States[i][0]))
			}
		}
		Expect(peak).To(BeNumerically("<", 1.75))
	})

	It("round-trips interpolation at every sample time", func() {
		for _, j := range []int{0, 2} {
			tr := res.Series.Trace("x", j)
			for i, tm := range tr.T {
				Expect(tr.At(tm)).To(Equal(tr.Y[i]))
			}
		}
	})

	It("is symmetric under relabeling the masses", func() {
		swapped := solve(osc, dynamo.State{0, 0, 1.75, 0}, 0, 60, 1000)
		for i := range res.Series.States {
			a, b := res.Series.States[i], swapped.Series.States[i]
			Expect(b[0]).To(BeNumerically("~", a[2], 1e-6))
			Expect(b[2]).To(BeNumerically("~", a[0], 1e-6))
		}
	})

	DescribeTable("holds the sample count for any valid parameters",
		func(m, k1, k2 float64, x0 dynamo.State, n int) {
			r := solve(physics.NewCoupledOscillator(m, k1, k2), x0, 0, 10, n)
			Expect(r.Series.Len()).To(Equal(n))
			Expect(r.Series.T[n-1]).To(Equal(10.0))
		},
		Entry("two samples", 1.0, 10.0, 8.0, dynamo.State{1, 0, 0, 0}, 2),
		Entry("uncoupled", 2.0, 5.0, 0.0, dynamo.State{1, 0, -1, 0}, 100),
		Entry("free masses", 1.0, 0.0, 3.0, dynamo.State{0, 1, 0, -1}, 50),
		Entry("at rest", 1.0, 10.0, 8.0, dynamo.State{0, 0, 0, 0}, 10),
	)

	It("agrees with fixed-step RK4", func() {
		s := sim.New(osc, integrators.NewRK4(), zerolog.Nop())
		fixed, err := s.Run(context.Background(), x0, sim.Linspace(0, 60, 1000), sim.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		for i := range fixed.Series.States {
			Expect(fixed.Series.States[i][0]).To(BeNumerically("~", res.Series.States[i][0], 1e-4))
		}
	})

	It("rejects a non-positive mass", func() {
		s := sim.New(physics.NewCoupledOscillator(0, 10, 8), integrators.NewRK45(), zerolog.Nop())
		_, err := s.Run(context.Background(), x0, sim.Linspace(0, 60, 1000), sim.DefaultOptions())
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})
