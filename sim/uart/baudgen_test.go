package uart

import (
	"testing"
)

func pulseTicks(g *BaudGen, ticks int) []int {
	var pulses []int
	for i := 0; i < ticks; i++ {
		if g.Step() {
			pulses = append(pulses, i)
		}
	}
	return pulses
}

func TestImmediateFirstPulse(t *testing.T) {
	g := MakeBaudGen(4)
	pulses := pulseTicks(g, 13)
	expected := []int{0, 4, 8, 12}
	if len(pulses) != len(expected) {
		t.Fatalf("got pulses %v, expected %v", pulses, expected)
	}
	for i := range expected {
		if pulses[i] != expected[i] {
			t.Fatalf("got pulses %v, expected %v", pulses, expected)
		}
	}
}

func TestRestartPhasing(t *testing.T) {
	g := MakeBaudGen(4)
	g.Step() // consume the immediate pulse
	g.Restart(2)
	pulses := pulseTicks(g, 11)
	// counting from the restart: pulses at 2, then every 4
	expected := []int{1, 5, 9}
	if len(pulses) != len(expected) {
		t.Fatalf("got pulses %v, expected %v", pulses, expected)
	}
	for i := range expected {
		if pulses[i] != expected[i] {
			t.Fatalf("got pulses %v, expected %v", pulses, expected)
		}
	}
}

func TestRestartZeroPulsesImmediately(t *testing.T) {
	g := MakeBaudGen(4)
	g.Step()
	g.Restart(0)
	if !g.Step() {
		t.Error("Restart(0) should pulse on the next step")
	}
}

func TestUnitInterval(t *testing.T) {
	g := MakeBaudGen(1)
	for i := 0; i < 5; i++ {
		if !g.Step() {
			t.Fatalf("unit interval should pulse every tick (tick %d)", i)
		}
	}
}

func TestIndependentGenerators(t *testing.T) {
	a := MakeBaudGen(4)
	b := MakeBaudGen(4)
	a.Step()
	b.Step()
	a.Restart(3)
	// restarting a must not disturb b's phase
	if b.Step() {
		t.Error("b should not pulse one tick after its own pulse")
	}
}
