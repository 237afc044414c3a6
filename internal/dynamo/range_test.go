package dynamo

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Range", func() {
	var model decayModel

	BeforeEach(func() {
		model = decayModel{}
	})

	Describe("MakeRange", func() {
		It("pairs a fresh generator with the sentinel", func() {
			r, err := MakeRange[float64, float64, float64, float64, time.Duration](model, euler{}, 1, 1, time.Second, 500*time.Millisecond)
			Expect(err).NotTo(HaveOccurred())

			Expect(r.Begin().Elapsed()).To(BeZero())
			Expect(r.End().AtEnd()).To(BeTrue())
			Expect(r.Begin().Equal(r.End())).To(BeFalse())
		})

		It("rejects a non-positive step", func() {
			_, err := MakeRange[float64, float64, float64, float64, time.Duration](model, euler{}, 1, 1, time.Second, 0)
			Expect(err).To(MatchError(ErrNonPositiveStep))
		})
	})

	Describe("All", func() {
		It("yields every sample before the span is covered", func() {
			r, err := MakeRange[float64, float64, float64, float64, time.Duration](model, euler{}, 1, 1, time.Second, 500*time.Millisecond)
			Expect(err).NotTo(HaveOccurred())

			var times []time.Duration
			var states []float64
			for t, x := range r.All() {
				times = append(times, t)
				states = append(states, x)
			}

			Expect(times).To(Equal([]time.Duration{0, 500 * time.Millisecond}))
			Expect(states).To(Equal([]float64{1.0, 0.5}))
			Expect(r.Begin().Equal(r.End())).To(BeTrue())
		})

		It("stops at a live end position", func() {
			begin, err := NewGenerator[float64, float64, float64, float64, time.Duration](model, euler{}, 1, 1, time.Second, 100*time.Millisecond)
			Expect(err).NotTo(HaveOccurred())
			end, err := NewGenerator[float64, float64, float64, float64, time.Duration](model, euler{}, 1, 1, time.Second, 100*time.Millisecond)
			Expect(err).NotTo(HaveOccurred())
			end.Advance()
			end.Advance()

			count := 0
			for range NewRange(begin, end).All() {
				count++
			}

			Expect(count).To(Equal(2))
			Expect(begin.Elapsed()).To(Equal(200 * time.Millisecond))
		})

		It("yields nothing for an empty span", func() {
			r, err := MakeRange[float64, float64, float64, float64, time.Duration](model, euler{}, 1, 1, 0, time.Millisecond)
			Expect(err).NotTo(HaveOccurred())

			count := 0
			for range r.All() {
				count++
			}
			Expect(count).To(BeZero())
		})
	})
})
