package lightning_test

import (
	"math/rand"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/snowtype/internal/lightning"
	"github.com/san-kum/snowtype/internal/viz"
)

func TestLightning(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lightning Suite")
}

var _ = Describe("Field", func() {
	var (
		canvas *viz.Canvas
		field  *lightning.Field
		now    time.Time
	)

	BeforeEach(func() {
		canvas = viz.NewCanvas(40, 12, 1)
		var err error
		field, err = lightning.New(canvas, 40, 2, lightning.DefaultOptions(), rand.New(rand.NewSource(42)))
		Expect(err).NotTo(HaveOccurred())
		now = time.Unix(100, 0)
	})

	advance := func(d time.Duration) bool {
		now = now.Add(d)
		return field.Advance(now)
	}

	It("draws the bolt once it starts growing", func() {
		advance(0)
		advance(16 * time.Millisecond)
		Expect(field.MaxPathLength()).To(BeNumerically(">=", 2))
		Expect(canvas.Alpha(40, 2)).To(BeNumerically(">", 0))
	})

	It("empties within a bounded number of frames", func() {
		frames := 0
		for field.Len() > 0 {
			advance(16 * time.Millisecond)
			frames++
			Expect(frames).To(BeNumerically("<", 2000))
		}
		Expect(field.Done()).To(BeFalse())
	})

	It("keeps fading while it lingers", func() {
		for field.Len() > 0 {
			advance(16 * time.Millisecond)
		}
		Expect(advance(500 * time.Millisecond)).To(BeTrue())
		Expect(field.Done()).To(BeFalse())
		Expect(advance(500 * time.Millisecond)).To(BeFalse())
		Expect(field.Done()).To(BeTrue())
		Expect(canvas.Lit()).To(BeZero())
	})
})
