package write

import (
	"bytes"
	"strings"
	"testing"
)

type counter struct {
	n    int
	x    float64
	locs []float64
}

func (c *counter) AppendWriteData(v []*Value) []*Value {
	v = append(v, &Value{Heading: "N", Value: c.n})
	v = append(v, &Value{Heading: "LongHeading", Value: c.x})
	v = append(v, &Value{Heading: "Loc", Value: c.locs})
	return v
}

func TestDisplayer(t *testing.T) {
	var buf bytes.Buffer
	c := &counter{locs: []float64{1, 2}}
	d := NewDisplay()
	d.AddDataAdder(c)
	if err := d.Init(Verbose(&buf)); err != nil {
		t.Fatal(err)
	}
	iters := headingInterval + 5
	for i := 0; i < iters; i++ {
		c.n = i + 1
		c.x = float64(i)
		if err := d.Iterate(); err != nil {
			t.Fatal(err)
		}
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	// banner, blank, then headings twice
	if len(lines) != 2+iters+2 {
		t.Fatalf("expected %d lines, found %d", 2+iters+2, len(lines))
	}
	if lines[0] != "Beginning Optimization" || lines[1] != "" {
		t.Errorf("unexpected banner %q %q", lines[0], lines[1])
	}
	if !strings.HasPrefix(lines[2], "N") || !strings.Contains(lines[2], "LongHeading") {
		t.Errorf("unexpected headings %q", lines[2])
	}
	if !strings.HasPrefix(lines[2+headingInterval+1], "N") {
		t.Errorf("headings not repeated after %d lines: %q", headingInterval, lines[2+headingInterval+1])
	}
	fields := strings.Split(lines[3], "\t")
	if len(fields) != 3 || strings.TrimSpace(fields[0]) != "1" {
		t.Errorf("unexpected first line %q", lines[3])
	}
	if len(fields[1]) < len("LongHeading") {
		t.Errorf("value column %q not aligned to its heading", fields[1])
	}
	if strings.TrimSpace(fields[2]) != "[1.000000e+00 2.000000e+00]" {
		t.Errorf("unexpected slice rendering %q", fields[2])
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	c := &counter{}
	d := NewDisplay()
	d.AddDataAdder(c)
	if err := d.Init(&WriteSettings{DisplayWriters: []Writer{{&buf, Logger}}}); err != nil {
		t.Fatal(err)
	}
	c.n = 7
	c.x = 0.5
	if err := d.Iterate(); err != nil {
		t.Fatal(err)
	}
	want := "N,LongHeading,Loc\n7,5.000000e-01,[]\n"
	if buf.String() != want {
		t.Errorf("expected %q, found %q", want, buf.String())
	}
}

func TestQuiet(t *testing.T) {
	d := NewDisplay()
	d.AddDataAdder(&counter{})
	for _, s := range []*WriteSettings{nil, DefaultWriteSettings()} {
		if err := d.Init(s); err != nil {
			t.Fatal(err)
		}
		if err := d.Iterate(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestUnknownType(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay()
	if err := d.Init(&WriteSettings{DisplayWriters: []Writer{{&buf, Type(7)}}}); err == nil {
		t.Errorf("expected an error for an unknown writer type")
	}
}
