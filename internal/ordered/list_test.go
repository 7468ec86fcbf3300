package ordered

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type item string

func (i item) Key() string { return string(i) }

func list(keys ...string) *List[item] {
	items := make([]item, len(keys))
	for i, k := range keys {
		items[i] = item(k)
	}
	return New(items...)
}

func TestList(t *testing.T) {
	t.Run("New Copies Input", func(t *testing.T) {
		in := []item{"A", "B"}
		l := New(in...)
		in[0] = "Z"
		if diff := cmp.Diff([]string{"A", "B"}, l.Keys()); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Items Returns Copy", func(t *testing.T) {
		l := list("A", "B")
		items := l.Items()
		items[0] = "Z"
		if got, _ := l.At(0); got != "A" {
			t.Errorf("expected list untouched, got %s", got)
		}
	})

	t.Run("At And IndexOf", func(t *testing.T) {
		l := list("A", "B", "C")
		if got, ok := l.At(2); !ok || got != "C" {
			t.Errorf("At(2) = %v, %v", got, ok)
		}
		if _, ok := l.At(3); ok {
			t.Error("expected At(3) out of range")
		}
		if _, ok := l.At(-1); ok {
			t.Error("expected At(-1) out of range")
		}
		if l.IndexOf("B") != 1 || l.IndexOf("Q") != -1 {
			t.Error("unexpected IndexOf result")
		}
	})

	t.Run("Nil List Is Empty", func(t *testing.T) {
		var l *List[item]
		if l.Len() != 0 || l.Items() != nil || len(l.Keys()) != 0 {
			t.Error("expected nil list to behave as empty")
		}
	})
}

func TestMove(t *testing.T) {
	t.Run("Transfer Between Lists", func(t *testing.T) {
		src, dst := list("A", "B", "C"), list()
		gotSrc, gotDst := Move(src, dst, 1, 0)

		if diff := cmp.Diff([]string{"A", "C"}, gotSrc.Keys()); diff != "" {
			t.Errorf("source mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"B"}, gotDst.Keys()); diff != "" {
			t.Errorf("destination mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Same List Past End", func(t *testing.T) {
		l := list("A", "B")
		a, b := Move(l, l, 0, 2)

		if a != b {
			t.Error("expected both results to be the same list")
		}
		if diff := cmp.Diff([]string{"B", "A"}, a.Keys()); diff != "" {
			t.Errorf("result mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Same List Reorder", func(t *testing.T) {
		tc := []struct {
			from, to int
			want     []string
		}{
			{0, 2, []string{"B", "C", "A", "D"}},
			{3, 0, []string{"D", "A", "B", "C"}},
			{1, 2, []string{"A", "C", "B", "D"}},
			{2, 1, []string{"A", "C", "B", "D"}},
			{0, 4, []string{"B", "C", "D", "A"}},
		}
		for _, tt := range tc {
			t.Run(fmt.Sprintf("%d to %d", tt.from, tt.to), func(t *testing.T) {
				l := list("A", "B", "C", "D")
				got, _ := Move(l, l, tt.from, tt.to)
				if diff := cmp.Diff(tt.want, got.Keys()); diff != "" {
					t.Errorf("result mismatch (-want +got):\n%s", diff)
				}
			})
		}
	})

	t.Run("Identity", func(t *testing.T) {
		l := list("A", "B", "C")
		for i := 0; i < l.Len(); i++ {
			a, b := Move(l, l, i, i)
			if a != l || b != l {
				t.Errorf("Move(l, l, %d, %d) should return the input list", i, i)
			}
		}
	})

	t.Run("Equal Contents Are Not The Same List", func(t *testing.T) {
		src, dst := list("A", "B"), list("A", "B")
		gotSrc, gotDst := Move(src, dst, 0, 0)

		if diff := cmp.Diff([]string{"B"}, gotSrc.Keys()); diff != "" {
			t.Errorf("source mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"A", "A", "B"}, gotDst.Keys()); diff != "" {
			t.Errorf("destination mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Inputs Are Not Mutated", func(t *testing.T) {
		src, dst := list("A", "B", "C"), list("X", "Y")
		Move(src, dst, 0, 1)
		if diff := cmp.Diff([]string{"A", "B", "C"}, src.Keys()); diff != "" {
			t.Errorf("source mutated (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"X", "Y"}, dst.Keys()); diff != "" {
			t.Errorf("destination mutated (-want +got):\n%s", diff)
		}

		same := list("A", "B", "C")
		Move(same, same, 0, 2)
		if diff := cmp.Diff([]string{"A", "B", "C"}, same.Keys()); diff != "" {
			t.Errorf("same list mutated (-want +got):\n%s", diff)
		}
	})

	t.Run("Shared Backing Array Is Not Touched", func(t *testing.T) {
		backing := make([]item, 2, 8)
		backing[0], backing[1] = "X", "Y"
		dst := &List[item]{items: backing}
		_, got := Move(list("A"), dst, 0, 1)

		if diff := cmp.Diff([]string{"X", "A", "Y"}, got.Keys()); diff != "" {
			t.Errorf("destination mismatch (-want +got):\n%s", diff)
		}
		if backing[:3][2] != "" {
			t.Error("expected original backing array to be left alone")
		}
	})

	t.Run("Cancelled Drop", func(t *testing.T) {
		src := list("A", "B")
		gotSrc, gotDst := Move(src, nil, 0, 0)
		if gotSrc != src || gotDst != nil {
			t.Error("expected inputs returned unchanged")
		}
	})

	t.Run("Invalid Indices Are No-ops", func(t *testing.T) {
		tc := []struct {
			name     string
			from, to int
			same     bool
		}{
			{"negative source", -1, 0, false},
			{"source past end", 3, 0, false},
			{"negative destination", 0, -1, false},
			{"destination past end", 0, 3, false},
			{"same list destination past end", 0, 4, true},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				src, dst := list("A", "B", "C"), list("X", "Y")
				if tt.same {
					dst = src
				}
				gotSrc, gotDst := Move(src, dst, tt.from, tt.to)
				if gotSrc != src || gotDst != dst {
					t.Error("expected inputs returned unchanged")
				}
			})
		}
	})

	t.Run("Empty Source", func(t *testing.T) {
		src, dst := list(), list("A")
		gotSrc, gotDst := Move(src, dst, 0, 0)
		if gotSrc != src || gotDst != dst {
			t.Error("expected inputs returned unchanged")
		}
	})
}

func TestMoveLaws(t *testing.T) {
	srcKeys := []string{"A", "B", "C", "D"}
	dstKeys := []string{"W", "X", "Y"}

	t.Run("Conservation", func(t *testing.T) {
		for from := 0; from < len(srcKeys); from++ {
			for to := 0; to <= len(dstKeys); to++ {
				src, dst := list(srcKeys...), list(dstKeys...)
				gotSrc, gotDst := Move(src, dst, from, to)
				if gotSrc.Len()+gotDst.Len() != src.Len()+dst.Len() {
					t.Errorf("Move(%d, %d) changed total length", from, to)
				}
			}
		}

		for from := 0; from < len(srcKeys); from++ {
			for to := 0; to <= len(srcKeys); to++ {
				l := list(srcKeys...)
				a, b := Move(l, l, from, to)
				if a.Len()+b.Len() != 2*l.Len() {
					t.Errorf("same-list Move(%d, %d) changed total length", from, to)
				}
			}
		}
	})

	t.Run("Inverse Across Lists", func(t *testing.T) {
		for from := 0; from < len(srcKeys); from++ {
			for to := 0; to <= len(dstKeys); to++ {
				src, dst := list(srcKeys...), list(dstKeys...)
				movedKey := srcKeys[from]

				gotSrc, gotDst := Move(src, dst, from, to)
				inserted := gotDst.IndexOf(movedKey)
				if inserted != to {
					t.Fatalf("expected %s at %d, found at %d", movedKey, to, inserted)
				}

				backDst, backSrc := Move(gotDst, gotSrc, inserted, from)
				if diff := cmp.Diff(srcKeys, backSrc.Keys()); diff != "" {
					t.Errorf("Move(%d, %d) inverse source mismatch (-want +got):\n%s", from, to, diff)
				}
				if diff := cmp.Diff(dstKeys, backDst.Keys()); diff != "" {
					t.Errorf("Move(%d, %d) inverse destination mismatch (-want +got):\n%s", from, to, diff)
				}
			}
		}
	})

	t.Run("Inverse Within List", func(t *testing.T) {
		for from := 0; from < len(srcKeys); from++ {
			for to := 0; to <= len(srcKeys); to++ {
				l := list(srcKeys...)
				movedKey := srcKeys[from]

				next, _ := Move(l, l, from, to)
				inserted := next.IndexOf(movedKey)
				back, _ := Move(next, next, inserted, from)
				if diff := cmp.Diff(srcKeys, back.Keys()); diff != "" {
					t.Errorf("Move(%d, %d) inverse mismatch (-want +got):\n%s", from, to, diff)
				}
			}
		}
	})
}
