package rewind_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
	"github.com/SzymonKubica/game-console-sub000/internal/rewind"
)

// advance runs one generation the way the controller does: step, apply,
// record.
func advance(b *rewind.Buffer, g *grid.Grid, generation int) rewind.Entry {
	ds := life.Step(g)
	grid.Apply(g, ds)
	return b.Record(rewind.Entry{Generation: generation, Diffs: ds})
}

var _ = Describe("Buffer", func() {
	var (
		g   *grid.Grid
		buf *rewind.Buffer
	)

	newBoard := func(topo grid.Topology) *grid.Grid {
		board, err := grid.New(12, 12, topo)
		Expect(err).NotTo(HaveOccurred())
		life.Prepopulate(board, 42, 0.35)
		return board
	}

	It("rejects a zero capacity", func() {
		_, err := rewind.New(0)
		Expect(err).To(MatchError(rewind.ErrZeroCapacity))
		_, err = rewind.New(-3)
		Expect(err).To(MatchError(rewind.ErrZeroCapacity))
	})

	Context("when empty", func() {
		BeforeEach(func() {
			var err error
			buf, err = rewind.New(4)
			Expect(err).NotTo(HaveOccurred())
			g = newBoard(grid.Toroidal)
		})

		It("refuses to enter rewind", func() {
			Expect(buf.EnterRewind()).To(BeFalse())
			Expect(buf.Rewinding()).To(BeFalse())
			Expect(buf.Cursor()).To(Equal(-1))
		})

		It("treats steps as no-ops", func() {
			before := g.Clone()
			_, ok := buf.StepBack(g)
			Expect(ok).To(BeFalse())
			_, ok = buf.StepForward(g)
			Expect(ok).To(BeFalse())
			Expect(g.Equal(before)).To(BeTrue())
		})
	})

	for _, topo := range []grid.Topology{grid.Bounded, grid.Toroidal} {
		topo := topo

		Context("on a "+topo.String()+" board", func() {
			const capacity = 8

			BeforeEach(func() {
				var err error
				buf, err = rewind.New(capacity)
				Expect(err).NotTo(HaveOccurred())
				g = newBoard(topo)
			})

			It("restores the initial board after N steps back", func() {
				g0 := g.Clone()
				const n = 5
				for i := 1; i <= n; i++ {
					advance(buf, g, i)
				}
				Expect(buf.Len()).To(Equal(n))

				Expect(buf.EnterRewind()).To(BeTrue())
				for i := 0; i < n; i++ {
					_, ok := buf.StepBack(g)
					Expect(ok).To(BeTrue())
				}
				Expect(g.Equal(g0)).To(BeTrue())

				_, ok := buf.StepBack(g)
				Expect(ok).To(BeFalse())
				Expect(g.Equal(g0)).To(BeTrue())
			})

			It("replays forward to the present and no further", func() {
				for i := 1; i <= 4; i++ {
					advance(buf, g, i)
				}
				present := g.Clone()

				Expect(buf.EnterRewind()).To(BeTrue())
				for i := 0; i < 3; i++ {
					buf.StepBack(g)
				}
				Expect(buf.Behind()).To(Equal(3))

				for i := 0; i < 3; i++ {
					_, ok := buf.StepForward(g)
					Expect(ok).To(BeTrue())
				}
				Expect(g.Equal(present)).To(BeTrue())
				Expect(buf.Cursor()).To(Equal(buf.Latest()))

				for i := 0; i < 5; i++ {
					_, ok := buf.StepForward(g)
					Expect(ok).To(BeFalse())
				}
				Expect(g.Equal(present)).To(BeTrue())
			})

			It("stops at the oldest retained generation after overflowing", func() {
				boards := []*grid.Grid{g.Clone()}
				for i := 1; i <= capacity+1; i++ {
					advance(buf, g, i)
					boards = append(boards, g.Clone())
				}
				Expect(buf.Len()).To(Equal(capacity))

				Expect(buf.EnterRewind()).To(BeTrue())
				moved := 0
				for i := 0; i < capacity+1; i++ {
					if _, ok := buf.StepBack(g); ok {
						moved++
					}
				}
				Expect(moved).To(Equal(capacity))
				// generation 0 was evicted; generation 1 is the oldest reachable
				Expect(g.Equal(boards[1])).To(BeTrue())

				// the cursor sits on the present slot again, but stepping
				// forward must still replay history rather than stop
				Expect(buf.Cursor()).To(Equal(buf.Latest()))
				e, ok := buf.StepForward(g)
				Expect(ok).To(BeTrue())
				Expect(e.Generation).To(Equal(2))
				Expect(g.Equal(boards[2])).To(BeTrue())
			})

			It("overwrites the old future when resuming from a rewound point", func() {
				for i := 1; i <= 5; i++ {
					advance(buf, g, i)
				}
				Expect(buf.EnterRewind()).To(BeTrue())
				buf.StepBack(g)
				buf.StepBack(g)
				buf.ExitRewind()
				Expect(buf.Len()).To(Equal(3))

				toggle := g.Toggle(grid.Position{Row: 0, Col: 0})
				grid.Apply(g, toggle)
				e := buf.Record(rewind.Entry{Generation: 3, Edit: true, Diffs: toggle})
				Expect(e.Seq).To(Equal(uint64(6)))
				Expect(buf.Len()).To(Equal(4))

				Expect(buf.EnterRewind()).To(BeTrue())
				_, ok := buf.StepForward(g)
				Expect(ok).To(BeFalse())

				back, ok := buf.StepBack(g)
				Expect(ok).To(BeTrue())
				Expect(back.Edit).To(BeTrue())
				Expect(back.Before()).To(Equal(3))

				entries := buf.Entries()
				Expect(entries).To(HaveLen(3))
				Expect(entries[2].Generation).To(Equal(3))
			})

			It("leaves the board as displayed on exit", func() {
				for i := 1; i <= 3; i++ {
					advance(buf, g, i)
				}
				Expect(buf.EnterRewind()).To(BeTrue())
				buf.StepBack(g)
				shown := g.Clone()
				buf.ExitRewind()
				Expect(g.Equal(shown)).To(BeTrue())
				Expect(buf.Rewinding()).To(BeFalse())

				cur, ok := buf.Current()
				Expect(ok).To(BeTrue())
				Expect(cur.Generation).To(Equal(2))
			})
		})
	}

	It("keeps sequence numbers increasing across eviction", func() {
		var err error
		buf, err = rewind.New(2)
		Expect(err).NotTo(HaveOccurred())
		g = newBoard(grid.Toroidal)

		var last uint64
		for i := 1; i <= 7; i++ {
			e := advance(buf, g, i)
			Expect(e.Seq).To(BeNumerically(">", last))
			last = e.Seq
		}
		Expect(buf.Entries()).To(HaveLen(2))
		Expect(buf.Entries()[1].Seq).To(Equal(last))
	})

	It("can rewind to before the oldest entry and record from there", func() {
		var err error
		buf, err = rewind.New(3)
		Expect(err).NotTo(HaveOccurred())
		g = newBoard(grid.Bounded)
		g0 := g.Clone()

		advance(buf, g, 1)
		advance(buf, g, 2)
		Expect(buf.EnterRewind()).To(BeTrue())
		buf.StepBack(g)
		buf.StepBack(g)
		Expect(g.Equal(g0)).To(BeTrue())
		_, ok := buf.Current()
		Expect(ok).To(BeFalse())

		buf.ExitRewind()
		Expect(buf.Empty()).To(BeTrue())
		Expect(buf.EnterRewind()).To(BeFalse())

		advance(buf, g, 1)
		Expect(buf.Len()).To(Equal(1))
		Expect(buf.EnterRewind()).To(BeTrue())
		buf.StepBack(g)
		Expect(g.Equal(g0)).To(BeTrue())
	})
})
