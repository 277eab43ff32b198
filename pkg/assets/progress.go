package assets

import "io"

// progressReader reports bytes read in roughly ten steps plus a final report
// at EOF.
type progressReader struct {
	r      io.Reader
	total  int64
	loaded int64
	last   int64
	step   int64
	done   bool
	report func(loaded, total int64)
}

func newProgressReader(r io.Reader, total int64, report func(loaded, total int64)) *progressReader {
	return &progressReader{
		r:      r,
		total:  total,
		step:   max(total/10, 1),
		report: report,
	}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.loaded += int64(n)
	switch {
	case err == io.EOF && !p.done:
		p.done = true
		p.report(p.loaded, p.total)
	case n > 0 && p.loaded-p.last >= p.step:
		p.last = p.loaded
		p.report(p.loaded, p.total)
	}
	return n, err
}
