package worldgraph

import (
	"reflect"
	"testing"

	"github.com/zora-rando/zora-core/internal/worldmodel"
)

func TestScreensWithCaveSortsAscending(t *testing.T) {
	g := New()
	g.AddScreen(&worldmodel.Screen{ID: 0x30, CaveDestination: 7})
	g.AddScreen(&worldmodel.Screen{ID: 0x02, CaveDestination: 7})
	g.AddScreen(&worldmodel.Screen{ID: 0x10, CaveDestination: 7})
	g.AddScreen(&worldmodel.Screen{ID: 0x11, CaveDestination: 9})

	got := g.ScreensWithCave(7)
	want := []int{0x02, 0x10, 0x30}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ScreensWithCave(7) = %v, want %v", got, want)
	}
}

func TestScreensWithCaveNoMatches(t *testing.T) {
	g := New()
	g.AddScreen(&worldmodel.Screen{ID: 1, CaveDestination: worldmodel.NoCave})
	if got := g.ScreensWithCave(3); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestAddLevelAndScreenRegister(t *testing.T) {
	g := New()
	g.AddScreen(&worldmodel.Screen{ID: 5})
	g.AddLevel(&worldmodel.Level{Num: 3})

	if _, ok := g.Screens[5]; !ok {
		t.Fatal("screen 5 not registered")
	}
	if _, ok := g.Levels[3]; !ok {
		t.Fatal("level 3 not registered")
	}
}
