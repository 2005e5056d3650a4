package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ringlab/ringsim/internal/field"
	"github.com/ringlab/ringsim/internal/integrators"
	"github.com/ringlab/ringsim/internal/sim"
)

var _ = Describe("ring-axis integration", func() {
	var (
		consts field.Constants
		s      *sim.Simulator
		cfg    sim.Config
	)

	BeforeEach(func() {
		// Negative test charge: attractive coupling (c ~ -9, omega ~ 3
		// rad/s), the oscillation regime.
		consts = field.Constants{
			Coulomb:    8.99e9,
			RingCharge: 1e-6,
			Radius:     1.0,
			Charge:     -1e-6,
			Mass:       1e-3,
		}
		s = sim.New(integrators.NewEulerCromer(),
			field.NewExactRing(consts), field.NewLinearRing(consts))
		cfg = sim.Config{Dt: 0.001, Duration: 2.0, X0: 0.05}
	})

	It("fills every sample of both trajectories", func() {
		result, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		n := cfg.Grid().Steps()
		Expect(result.Exact.Len()).To(Equal(n))
		Expect(result.Approx.Len()).To(Equal(n))

		last := n - 1
		Expect(result.Exact.Acc[last]).NotTo(BeZero())
		Expect(result.Approx.Acc[last]).NotTo(BeZero())
	})

	It("seeds identical initial conditions for both models", func() {
		result, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Exact.Pos[0]).To(Equal(cfg.X0))
		Expect(result.Approx.Pos[0]).To(Equal(cfg.X0))
		Expect(result.Exact.Vel[0]).To(Equal(cfg.V0))
		Expect(result.Approx.Vel[0]).To(Equal(cfg.V0))
	})

	It("applies the semi-implicit recurrence to both models", func() {
		result, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		exactLaw := field.NewExactRing(consts)
		approxLaw := field.NewLinearRing(consts)

		check := func(tr *sim.Trajectory, accel func(float64) float64) {
			for i := 1; i < tr.Len(); i++ {
				Expect(tr.Acc[i]).To(Equal(accel(tr.Pos[i-1])))
				Expect(tr.Vel[i]).To(Equal(tr.Vel[i-1] + tr.Acc[i]*cfg.Dt))
				Expect(tr.Pos[i]).To(Equal(tr.Pos[i-1] + tr.Vel[i]*cfg.Dt))
			}
		}
		check(result.Exact, exactLaw.Accel)
		check(result.Approx, approxLaw.Accel)
	})

	It("tracks the approximate model closely at small amplitude", func() {
		result, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Metrics["divergence_max"]).To(BeNumerically("<", 0.01*cfg.X0))
	})

	It("keeps a rest charge inside the ring bounded", func() {
		cfg.X0 = 0.5
		cfg.Duration = 20.0

		result, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Exact.IsValid()).To(BeTrue())

		for _, x := range result.Exact.Pos {
			Expect(x).To(BeNumerically("~", 0, 0.6))
		}
	})

	It("records energy drift for both models", func() {
		result, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Metrics).To(HaveKey("energy_drift_exact"))
		Expect(result.Metrics).To(HaveKey("energy_drift_approx"))
		Expect(result.Metrics["energy_drift_exact"]).To(BeNumerically("<", 1e-3))
	})
})
