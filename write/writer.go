package write

import (
	"fmt"
	"io"
	"strings"
)

type WriteSettings struct {
	DisplayWriters []Writer // Where should the display be written. This can be set to nil to avoid all display
}

// DefaultWriteSettings returns settings with no display writers, so optimizers
// run quietly unless a writer is added.
func DefaultWriteSettings() *WriteSettings {
	return &WriteSettings{}
}

// Verbose returns settings which display every iteration on w in aligned,
// human readable columns.
func Verbose(w io.Writer) *WriteSettings {
	return &WriteSettings{
		DisplayWriters: []Writer{{w, Displayer}},
	}
}

type Type int

const (
	// Logger is a writer intended to save details of the optimization run
	// for future postprocessing. The data is saved as a csv and data is printed
	// every major interation of the optimizer
	Logger Type = iota

	// Displayer is a writer intended for human monitoring of the optimization.
	// One aligned line is written per iteration and the headings are repeated
	// periodically
	Displayer
)

type Writer struct {
	io.Writer
	T Type
}

type Value struct {
	Value   interface{}
	Heading string
}

type DataAdder interface {
	AppendWriteData([]*Value) []*Value
}

func writeOptimizationHeader(w io.Writer) error {
	_, err := io.WriteString(w, "Beginning Optimization\n\n")
	return err
}

const headingInterval = 30

// Display writes the values of its data adders at every iteration.
// Assumption is that headings don't change
type Display struct {
	displayValues []*Value

	headings []string
	values   []string

	maxLengths []int

	linesSinceHeading int

	writers []Writer

	dataAdders []DataAdder
}

// accumulateValues gets all of the values from the data adder and stores
// them in display
func (d *Display) accumulateValues() {
	d.displayValues = d.displayValues[:0]
	for _, add := range d.dataAdders {
		d.displayValues = add.AppendWriteData(d.displayValues)
	}
}

func NewDisplay() *Display {
	return &Display{}
}

// AddDataAdder adds a DataAdder to the list of values to be printed/logged.
// This should only be called during initialization
func (d *Display) AddDataAdder(dataAdders ...DataAdder) {
	d.dataAdders = append(d.dataAdders, dataAdders...)
}

// Init initializes the displays for the writers according to their Type.
// A nil w disables all output.
func (d *Display) Init(w *WriteSettings) error {
	d.writers = nil
	if w != nil {
		d.writers = w.DisplayWriters
	}
	// headings are written before the first line
	d.linesSinceHeading = headingInterval

	if len(d.writers) == 0 {
		return nil
	}
	d.accumulateValues()

	// get all of the headings
	d.headings = d.headings[:0]
	for _, dat := range d.displayValues {
		d.headings = append(d.headings, dat.Heading)
	}

	// Write the initial headers to all of the writers
	for _, w := range d.writers {
		switch w.T {
		default:
			return fmt.Errorf("display: unknown writer type %d", w.T)
		case Logger:
			if err := writeCSV(w, d.headings); err != nil {
				return err
			}
		case Displayer:
			if err := writeOptimizationHeader(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// Iterate is the write action performed by display at every iteration
// of the algorithm, as set by the values in the Writers and dataAdders which
// were set during initialization
func (d *Display) Iterate() error {
	if len(d.writers) == 0 {
		return nil
	}

	d.accumulateValues()
	d.values = d.values[:0]
	for _, v := range d.displayValues {
		d.values = append(d.values, valueToString(v.Value))
	}

	displayHeadings := d.linesSinceHeading >= headingInterval
	if displayHeadings {
		d.linesSinceHeading = 0
	}
	d.linesSinceHeading++

	// Find the max length of heading and value
	d.maxLengths = d.maxLengths[:0]
	for i, v := range d.values {
		l := len(v)
		if i < len(d.headings) && len(d.headings[i]) > l {
			l = len(d.headings[i])
		}
		d.maxLengths = append(d.maxLengths, l)
	}

	for _, w := range d.writers {
		switch w.T {
		default:
			return fmt.Errorf("display: unknown writer type %d", w.T)
		case Logger:
			if err := writeCSV(w, d.values); err != nil {
				return err
			}
		case Displayer:
			if displayHeadings {
				if err := writeAlignedStrings(w, d.headings, d.maxLengths); err != nil {
					return err
				}
			}
			if err := writeAlignedStrings(w, d.values, d.maxLengths); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAlignedStrings(w io.Writer, strs []string, maxLengths []int) error {
	var b strings.Builder
	for i, str := range strs {
		if i > 0 {
			b.WriteString("\t")
		}
		b.WriteString(str)
		if i < len(maxLengths) && maxLengths[i] > len(str) {
			b.WriteString(strings.Repeat(" ", maxLengths[i]-len(str)))
		}
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// writeCSV writes a single comma separated record
func writeCSV(w io.Writer, values []string) error {
	_, err := io.WriteString(w, strings.Join(values, ",")+"\n")
	return err
}

func valueToString(v interface{}) string {
	switch t := v.(type) {
	case int:
		return fmt.Sprintf("%d", t)
	case float64:
		return fmt.Sprintf("%e", t)
	case []float64:
		strs := make([]string, len(t))
		for i, f := range t {
			strs[i] = fmt.Sprintf("%e", f)
		}
		return "[" + strings.Join(strs, " ") + "]"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", v)
	}
}
