package sim

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynseq/internal/dynamo"
)

type halfStepper struct{}

func (halfStepper) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	x.AddScaled(dt/2, sys.Derive(*x, t))
}

var _ = Describe("Compare", func() {
	var spec Spec

	BeforeEach(func() {
		spec = testSpec()
	})

	It("measures every stepper against the reference", func() {
		out, err := Compare(context.Background(), spec, map[string]dynamo.VectorStepper{
			"euler": testStepper{},
			"half":  halfStepper{},
		}, "euler")
		Expect(err).NotTo(HaveOccurred())

		Expect(out).To(HaveLen(2))
		Expect(out[0].Stepper).To(Equal("euler"))
		Expect(out[0].Distance).To(BeZero())
		Expect(out[1].Stepper).To(Equal("half"))
		Expect(out[1].Distance).To(BeNumerically(">", 0))
		Expect(out[1].Steps).To(Equal(10))
	})

	It("requires the reference to be part of the set", func() {
		_, err := Compare(context.Background(), spec, map[string]dynamo.VectorStepper{
			"euler": testStepper{},
		}, "rk4")
		Expect(err).To(MatchError(ContainSubstring("reference stepper")))
	})

	It("propagates run failures", func() {
		spec.Step = 0
		_, err := Compare(context.Background(), spec, map[string]dynamo.VectorStepper{
			"euler": testStepper{},
		}, "euler")
		Expect(err).To(MatchError(dynamo.ErrNonPositiveStep))
	})
})
