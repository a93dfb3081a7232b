package uart

import (
	"strings"
	"testing"
)

func TestValidateAccepts(t *testing.T) {
	cfgs := []Config{
		{ClockHz: 1000000, BaudRate: 250000, DataBits: 8, Parity: ParityNone, StopBits: 1},
		{ClockHz: 1000000, BaudRate: 1000000, DataBits: 8, Parity: ParityNone, StopBits: 1},
		{ClockHz: 100000000, BaudRate: 115200, DataBits: 8, Parity: ParityOdd, StopBits: 2},
		{ClockHz: 1000000, BaudRate: 250000, DataBits: 5, Parity: ParitySpace, StopBits: 1, RxDelay: 1, TxDelay: 3},
	}
	for _, cfg := range cfgs {
		if err := cfg.Validate(); err != nil {
			t.Errorf("config %+v should have validated: %v", cfg, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	base := Config{ClockHz: 1000000, BaudRate: 250000, DataBits: 8, Parity: ParityNone, StopBits: 1}

	broken := []func(*Config){
		func(c *Config) { c.ClockHz = 0 },
		func(c *Config) { c.BaudRate = 0 },
		func(c *Config) { c.BaudRate = c.ClockHz * 2 },
		func(c *Config) { c.DataBits = 0 },
		func(c *Config) { c.DataBits = 9 },
		func(c *Config) { c.StopBits = 0 },
		func(c *Config) { c.Parity = ParityOdd; c.StopBits = 7 }, // 17-bit frame
		func(c *Config) { c.RxDelay = 2 },                        // sample point past the cell
	}
	for i, mutate := range broken {
		cfg := base
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("broken config %d (%+v) should have been rejected", i, cfg)
		}
	}
}

func TestValidateAggregatesViolations(t *testing.T) {
	cfg := Config{ClockHz: 1000000, BaudRate: 250000, DataBits: 12, Parity: ParityNone, StopBits: 0}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected rejection")
	}
	msg := err.Error()
	if !strings.Contains(msg, "data bit count") || !strings.Contains(msg, "stop bit") {
		t.Errorf("expected all violations reported together, got: %v", msg)
	}
}

func TestFrameBits(t *testing.T) {
	cfg := Config{ClockHz: 1000000, BaudRate: 250000, DataBits: 8, Parity: ParityNone, StopBits: 1}
	if cfg.FrameBits() != 10 {
		t.Errorf("8N1 frame should be 10 bits, got %d", cfg.FrameBits())
	}
	cfg.Parity = ParityEven
	cfg.StopBits = 2
	if cfg.FrameBits() != 13 {
		t.Errorf("8E2 frame should be 13 bits, got %d", cfg.FrameBits())
	}
}

func TestParseParity(t *testing.T) {
	for name, expected := range map[string]Parity{
		"none": ParityNone, "odd": ParityOdd, "even": ParityEven, "mark": ParityMark, "space": ParitySpace,
	} {
		parity, err := ParseParity(name)
		if err != nil || parity != expected {
			t.Errorf("ParseParity(%q) = %v, %v", name, parity, err)
		}
	}
	if _, err := ParseParity("bogus"); err == nil {
		t.Error("expected error for unknown parity name")
	}
}
