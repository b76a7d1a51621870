package prep

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
)

// PreparedPath returns the path the prepared table is written to.
func (p *Preparer) PreparedPath() string {
	return filepath.Join(p.dest, p.cfg.GetPreparedFileName())
}

// DictionaryPath returns the path the column dictionary is written to.
func (p *Preparer) DictionaryPath() string {
	return filepath.Join(p.dest, p.cfg.GetDictionaryFileName())
}

// Write saves the prepared table and the column dictionary into the
// destination directory, which must already exist.
func (p *Preparer) Write() error {
	if p.df == nil {
		return ErrNotInitialized
	}
	if p.cols == nil {
		return ErrNoDictionary
	}

	info, err := p.fs.Stat(p.dest)
	if err != nil {
		return &DestinationWriteError{Path: p.dest, Err: err}
	}
	if !info.IsDir() {
		return &DestinationWriteError{Path: p.dest, Err: fmt.Errorf("not a directory")}
	}

	if err := p.writeFile(p.PreparedPath(), p.df.WriteCSV); err != nil {
		return err
	}
	return p.writeFile(p.DictionaryPath(), p.cols.WriteCSV)
}

func (p *Preparer) writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := p.fs.Create(path)
	if err != nil {
		return &DestinationWriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &DestinationWriteError{Path: path, Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return &DestinationWriteError{Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &DestinationWriteError{Path: path, Err: err}
	}
	return nil
}
