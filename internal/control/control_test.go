package control

import (
	"testing"

	"github.com/Garsondee/slime-rts/internal/sim"
)

func TestRuneAction_Layout(t *testing.T) {
	cases := []struct {
		r    rune
		want Action
	}{
		{'1', ActSelectA},
		{'4', ActSelectD},
		{' ', ActSpawn},
		{'S', ActSpawn},
		{'r', ActRecall},
		{'F', ActToggleFog},
		{'e', ActExportFrame},
		{'o', ActExportOwned},
		{'q', ActQuit},
		{'x', ActNone},
		{'5', ActNone},
	}
	for _, c := range cases {
		if got := RuneAction(c.r); got != c.want {
			t.Errorf("RuneAction(%q) = %s, want %s", c.r, got, c.want)
		}
	}
}

func TestApply_PostsToMailbox(t *testing.T) {
	mb := sim.NewMailbox(sim.CellColorA)

	Apply(mb, ActSelectC)
	if mb.Peek().Color != sim.CellColorC {
		t.Fatalf("color = %s, want blue", mb.Peek().Color)
	}

	Apply(mb, ActSpawn)
	Apply(mb, ActSpawn)
	Apply(mb, ActExportOwned)
	in := mb.Take()
	if in.SpawnBatches != 2 || in.Export != sim.ExportOwned {
		t.Fatalf("taken intent %+v", in)
	}

	Apply(mb, ActRecall)
	if !mb.Peek().Recall {
		t.Fatal("recall not posted")
	}
}

func TestApply_LeavesFrontendActions(t *testing.T) {
	mb := sim.NewMailbox(sim.CellColorA)
	before := mb.Peek()
	for _, a := range []Action{ActToggleFog, ActQuit, ActNone} {
		if Apply(mb, a) {
			t.Errorf("%s should not be handled by the mailbox", a)
		}
	}
	if mb.Peek() != before {
		t.Fatal("frontend actions must not change the intent")
	}
}

func TestViewport_Cell(t *testing.T) {
	v := Viewport{OffX: 10, OffY: 0, ScaleX: 3, ScaleY: 3, W: 20, H: 10}

	if p, ok := v.Cell(10, 0); !ok || p != (sim.Point{}) {
		t.Fatalf("top-left = %v %v", p, ok)
	}
	if p, ok := v.Cell(10+3*7+2, 3*4+1); !ok || p != (sim.Point{X: 7, Y: 4}) {
		t.Fatalf("mid = %v %v", p, ok)
	}
	for _, pos := range [][2]int{{9, 0}, {10 + 60, 0}, {10, 30}, {0, -1}} {
		if _, ok := v.Cell(pos[0], pos[1]); ok {
			t.Errorf("(%d,%d) should be outside the playfield", pos[0], pos[1])
		}
	}
	if _, ok := (Viewport{W: 4, H: 4}).Cell(0, 0); ok {
		t.Fatal("zero scale must never map to a cell")
	}
}
