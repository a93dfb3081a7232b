package component

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/celskeggs/uartsim/sim/model"
	"github.com/hashicorp/go-multierror"
)

// TraceRecorder writes a timestamped event trace to a CSV file, one row per event. Each event is
// a (channel, value) pair; channels are free-form names such as "tx/line" or "rx/frame", and
// values are short strings chosen by the component being traced.
type TraceRecorder struct {
	sim    model.SimContext
	output *csv.Writer
}

func (r *TraceRecorder) IsRecording() bool {
	return r.output != nil
}

func (r *TraceRecorder) Record(channel string, value string) {
	if channel == "" {
		panic("invalid empty channel name")
	}
	if r.output == nil {
		// not recording; discard
		return
	}
	err := r.output.Write([]string{
		strconv.FormatUint(r.sim.Now().Nanoseconds(), 10),
		channel,
		value,
	})
	r.output.Flush()
	if err == nil {
		err = r.output.Error()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func (r *TraceRecorder) RecordBytes(channel string, dataBytes []byte) {
	r.Record(channel, hex.EncodeToString(dataBytes))
}

// MakeNullTraceRecorder returns a recorder that discards everything it is given.
func MakeNullTraceRecorder() *TraceRecorder {
	return &TraceRecorder{
		output: nil,
	}
}

func MakeTraceRecorder(sim model.SimContext, path string) *TraceRecorder {
	w, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	cw := csv.NewWriter(w)
	err = cw.Write([]string{"Nanoseconds", "Channel", "Value"})
	cw.Flush()
	if err == nil {
		err = cw.Error()
	}
	if err != nil {
		log.Fatal(err)
	}

	return &TraceRecorder{
		sim:    sim,
		output: cw,
	}
}

type TraceEvent struct {
	Timestamp model.VirtualTime
	Channel   string
	Value     string
}

func DecodeTrace(path string) (events []TraceEvent, re error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			re = multierror.Append(re, err)
		}
	}()
	rowsRaw, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rowsRaw) < 1 {
		return nil, errors.New("no header found")
	}
	if len(rowsRaw[0]) != 3 || rowsRaw[0][0] != "Nanoseconds" || rowsRaw[0][1] != "Channel" || rowsRaw[0][2] != "Value" {
		return nil, fmt.Errorf("invalid header: %v", rowsRaw[0])
	}
	for _, row := range rowsRaw[1:] {
		if len(row) != 3 {
			return nil, fmt.Errorf("invalid trace row: %v", row)
		}
		// decode timestamp
		timestampNS, err := strconv.ParseUint(row[0], 10, 64)
		if err != nil {
			return nil, err
		}
		timestamp, ok := model.FromNanoseconds(timestampNS)
		if !ok {
			return nil, fmt.Errorf("invalid timestamp: %v", row[0])
		}
		// decode channel
		channel := row[1]
		if channel == "" {
			return nil, errors.New("invalid empty string channel")
		}
		events = append(events, TraceEvent{
			Timestamp: timestamp,
			Channel:   channel,
			Value:     row[2],
		})
	}
	return events, nil
}
