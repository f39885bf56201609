package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"embedgraph/internal/domain"
)

var (
	// ErrMalformedHeader is returned when the "<count> <dimension>" line cannot be parsed.
	ErrMalformedHeader = errors.New("malformed corpus header")
	// ErrMalformedRow is returned for a row whose token count or values do not fit the header.
	ErrMalformedRow = errors.New("malformed corpus row")
)

// Header is the first line of a corpus or cache file.
type Header struct {
	Count     int
	Dimension int
}

// ParseHeader parses a "<count> <dimension>" line.
func ParseHeader(line string) (Header, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Header{}, fmt.Errorf("%w: %q", ErrMalformedHeader, strings.TrimSpace(line))
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return Header{}, fmt.Errorf("%w: bad word count %q", ErrMalformedHeader, fields[0])
	}
	dim, err := strconv.Atoi(fields[1])
	if err != nil || dim <= 0 {
		return Header{}, fmt.Errorf("%w: bad dimension %q", ErrMalformedHeader, fields[1])
	}
	return Header{Count: count, Dimension: dim}, nil
}

// Scanner reads the rows of a corpus one at a time. Every row is checked to
// hold exactly one word followed by Dimension values; only the vector of a
// row the caller asks for is parsed.
type Scanner struct {
	r      *bufio.Reader
	header Header
	line   int
	row    string
	word   string
	err    error
	done   bool
}

// NewScanner reads and validates the header of r.
func NewScanner(r io.Reader) (*Scanner, error) {
	s := &Scanner{r: bufio.NewReaderSize(r, 1<<20)}
	first, err := s.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if first == "" && errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedHeader)
	}
	h, perr := ParseHeader(first)
	if perr != nil {
		return nil, perr
	}
	s.header = h
	s.done = errors.Is(err, io.EOF)
	return s, nil
}

func (s *Scanner) Header() Header { return s.header }

// Line returns the 1-based line number of the current row.
func (s *Scanner) Line() int { return s.line }

// Word returns the leading token of the current row, unmodified.
func (s *Scanner) Word() string { return s.word }

// Err returns the first non-EOF error met by Scan.
func (s *Scanner) Err() error { return s.err }

// Scan advances to the next non-blank row.
func (s *Scanner) Scan() bool {
	for !s.done && s.err == nil {
		line, err := s.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
				return false
			}
			s.done = true
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := countFields(line); n != s.header.Dimension+1 {
			s.err = fmt.Errorf("%w: line %d has %d values, want %d", ErrMalformedRow, s.line, n-1, s.header.Dimension)
			return false
		}
		s.row = line
		s.word = leadingToken(line)
		return true
	}
	return false
}

// Vector parses the values of the current row. Every value must be a finite
// decimal number.
func (s *Scanner) Vector() (domain.Vector, error) {
	fields := splitFields(s.row)
	vec := make(domain.Vector, len(fields)-1)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d value %d: %v", ErrMalformedRow, s.line, i+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: line %d value %d: %q is not finite", ErrMalformedRow, s.line, i+1, f)
		}
		vec[i] = v
	}
	return vec, nil
}

func (s *Scanner) readLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if line != "" || err == nil {
		s.line++
	}
	return strings.TrimRight(line, "\r\n"), err
}

// WriteHeader writes the "<count> <dimension>" line.
func WriteHeader(w io.Writer, h Header) error {
	_, err := fmt.Fprintf(w, "%d %d\n", h.Count, h.Dimension)
	return err
}

// WriteRow writes one "<word> <v1> ... <vD>" line. Values use the shortest
// representation that parses back to the same float64.
func WriteRow(w *bufio.Writer, word string, vec domain.Vector) error {
	if _, err := w.WriteString(word); err != nil {
		return err
	}
	var buf [32]byte
	for _, v := range vec {
		if err := w.WriteByte(' '); err != nil {
			return err
		}
		if _, err := w.Write(strconv.AppendFloat(buf[:0], v, 'g', -1, 64)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func isSep(c byte) bool { return c == ' ' || c == '\t' }

func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })
}

func countFields(line string) int {
	n := 0
	in := false
	for i := 0; i < len(line); i++ {
		if isSep(line[i]) {
			in = false
			continue
		}
		if !in {
			n++
			in = true
		}
	}
	return n
}

func leadingToken(line string) string {
	start := 0
	for start < len(line) && isSep(line[start]) {
		start++
	}
	end := start
	for end < len(line) && !isSep(line[end]) {
		end++
	}
	return line[start:end]
}
