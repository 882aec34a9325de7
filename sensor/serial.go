package sensor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/pthm-cable/thermocam/thermal"
)

// ErrReadTimeout is returned when the bridge sends nothing within the read timeout.
var ErrReadTimeout = errors.New("serial read timed out")

// maxFrameLine bounds a single frame line from the bridge.
const maxFrameLine = 64 * 1024

// Serial reads frames from a microcontroller bridge. Each frame is one text
// line of rows*cols temperatures in °C, row-major, separated by commas or
// whitespace. Blank lines and lines starting with '#' are skipped.
type Serial struct {
	rows, cols int
	port       io.ReadCloser
	scanner    *bufio.Scanner
	lines      int
}

// OpenSerial opens the bridge at path.
func OpenSerial(path string, opts PortOptions, timeout time.Duration, rows, cols int) (*Serial, error) {
	if path == "" {
		return nil, errors.New("serial port path is empty")
	}
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if timeout > 0 {
		if err := port.SetReadTimeout(timeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %w", path, err)
		}
		return NewSerial(timeoutReader{port}, rows, cols), nil
	}
	return NewSerial(port, rows, cols), nil
}

// NewSerial reads frames from an already opened stream.
func NewSerial(r io.ReadCloser, rows, cols int) *Serial {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxFrameLine)
	return &Serial{rows: rows, cols: cols, port: r, scanner: sc}
}

// ReadSamples reads the next frame line into dst.
func (s *Serial) ReadSamples(dst *thermal.Grid) error {
	if err := checkDims(dst, s.rows, s.cols); err != nil {
		return err
	}
	for s.scanner.Scan() {
		s.lines++
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ParseFrame(line, dst); err != nil {
			return fmt.Errorf("line %d: %w", s.lines, err)
		}
		return nil
	}
	if err := s.scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}

// Dims returns the sample grid dimensions.
func (s *Serial) Dims() (rows, cols int) { return s.rows, s.cols }

// Close closes the underlying port.
func (s *Serial) Close() error { return s.port.Close() }

// ParseFrame parses one frame line into dst. The line must hold exactly
// len(dst.Data) finite values.
func ParseFrame(line string, dst *thermal.Grid) error {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) != len(dst.Data) {
		return fmt.Errorf("frame has %d values, want %d", len(fields), len(dst.Data))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d: non-finite temperature %q", i, f)
		}
		dst.Data[i] = v
	}
	return nil
}

// FormatFrame renders g in the line format ParseFrame accepts.
func FormatFrame(g *thermal.Grid) string {
	var b strings.Builder
	for i, v := range g.Data {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return b.String()
}

// timeoutReader turns the zero-byte reads go.bug.st/serial returns on a read
// timeout into ErrReadTimeout.
type timeoutReader struct {
	port serial.Port
}

func (r timeoutReader) Read(p []byte) (int, error) {
	n, err := r.port.Read(p)
	if n == 0 && err == nil && len(p) > 0 {
		return 0, ErrReadTimeout
	}
	return n, err
}

func (r timeoutReader) Close() error { return r.port.Close() }
