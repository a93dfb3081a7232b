package main

import (
	"bytes"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/celskeggs/uartsim/sim/capture"
	"github.com/celskeggs/uartsim/sim/component"
	"github.com/celskeggs/uartsim/sim/model"
	"github.com/celskeggs/uartsim/sim/testpoint"
	"github.com/celskeggs/uartsim/sim/uart"
)

func parseUintArg(value string, bits int) uint64 {
	parsed, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}

func main() {
	cfg := uart.Config{
		ClockHz:  1000000,
		BaudRate: 250000,
		DataBits: 8,
		Parity:   uart.ParityNone,
		StopBits: 1,
	}
	var count = 64
	var seed int64 = 0
	var tracePath = ""
	var dbPath = ""
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--clock" {
			cfg.ClockHz = parseUintArg(os.Args[i+1], 64)
		} else if os.Args[i] == "--baud" {
			cfg.BaudRate = parseUintArg(os.Args[i+1], 64)
		} else if os.Args[i] == "--bits" {
			cfg.DataBits = uint(parseUintArg(os.Args[i+1], 8))
		} else if os.Args[i] == "--parity" {
			parity, err := uart.ParseParity(os.Args[i+1])
			if err != nil {
				log.Fatal(err)
			}
			cfg.Parity = parity
		} else if os.Args[i] == "--stop" {
			cfg.StopBits = uint(parseUintArg(os.Args[i+1], 8))
		} else if os.Args[i] == "--count" {
			count = int(parseUintArg(os.Args[i+1], 31))
			if count == 0 {
				log.Fatal("cannot run with zero bytes of traffic")
			}
		} else if os.Args[i] == "--seed" {
			seed64, err := strconv.ParseInt(os.Args[i+1], 10, 64)
			if err != nil {
				log.Fatal(err)
			}
			seed = seed64
		} else if os.Args[i] == "--trace" {
			tracePath = os.Args[i+1]
		} else if os.Args[i] == "--db" {
			dbPath = os.Args[i+1]
		} else if os.Args[i] == "--help" {
			log.Fatalf("usage: %s [--clock hz] [--baud rate] [--bits n] [--parity mode] [--stop n] "+
				"[--count bytes] [--seed n] [--trace out.csv] [--db out.db]", os.Args[0])
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if dbPath != "" && tracePath == "" {
		log.Fatal("--db requires --trace to supply the frame events")
	}

	var ctx *component.SimController
	if seed != 0 {
		ctx = component.MakeSimControllerSeeded(seed)
	} else {
		ctx = component.MakeSimControllerRandomized()
	}

	trace := component.MakeNullTraceRecorder()
	if tracePath != "" {
		trace = component.MakeTraceRecorder(ctx, tracePath)
	}

	txSource, txSink := component.DataBufferBytes(ctx, count)
	rxSource, rxSink := component.DataBufferBytes(ctx, count)
	monitor := testpoint.MakeLogger(ctx, "loopback", time.Millisecond)
	_, err := uart.AttachLoopback(ctx, cfg, txSource, component.TeeDataSinks(ctx, rxSink, monitor), trace)
	if err != nil {
		log.Fatal(err)
	}

	payload := make([]byte, count)
	ctx.Rand().Read(payload)
	if n := txSink.TryWrite(payload); n != count {
		log.Fatalf("only buffered %d of %d bytes", n, count)
	}

	var received []byte
	component.DataPumpDirect(ctx, rxSource, func(data []byte) {
		received = append(received, data...)
	})

	tickPeriod := time.Second / time.Duration(cfg.ClockHz)
	frameTicks := time.Duration(cfg.FrameBits()) * time.Duration(cfg.TicksPerSymbol())
	deadline := model.TimeZero.Add(time.Duration(count+4) * frameTicks * tickPeriod)
	ctx.Advance(deadline)

	if !bytes.Equal(received, payload) {
		log.Fatalf("loopback mismatch: sent %d bytes, received %d matching up to index %d",
			len(payload), len(received), mismatchIndex(payload, received))
	}
	log.Printf("%v loopback complete: %d bytes echoed intact at %d baud", ctx.Now(), count, cfg.BaudRate)

	if dbPath != "" {
		events, err := component.DecodeTrace(tracePath)
		if err != nil {
			log.Fatal(err)
		}
		store, err := capture.Open(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		saved, err := storeFrames(store, events, "loopback/rx")
		if err != nil {
			log.Fatal(err)
		}
		errored, err := store.ErrorCount()
		if err != nil {
			log.Fatal(err)
		}
		if err := store.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("stored %d frames to %s (%d with errors)", saved, dbPath, errored)
	}
}

func mismatchIndex(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) < len(b) {
		return len(a)
	}
	return len(b)
}

// storeFrames loads the completed frames out of a decoded event trace. Error flag events
// share a timestamp with the frame they describe and always follow it.
func storeFrames(store *capture.Store, events []component.TraceEvent, channel string) (int, error) {
	saved := 0
	for i, ev := range events {
		if ev.Channel != "rx/frame" {
			continue
		}
		data, err := strconv.ParseUint(ev.Value, 16, 8)
		if err != nil {
			return saved, err
		}
		frameError, parityError := false, false
		for j := i + 1; j < len(events) && events[j].Timestamp == ev.Timestamp; j++ {
			if events[j].Channel == "rx/frame_error" {
				frameError = true
			}
			if events[j].Channel == "rx/parity_error" {
				parityError = true
			}
		}
		if err := store.SaveFrame(ev.Timestamp, channel, byte(data), frameError, parityError); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}
