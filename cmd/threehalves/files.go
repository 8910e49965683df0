package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	threehalves "github.com/shabbyrobe/go-threehalves"
)

// readState loads a state file. A missing file is treated as empty, which
// starts a run at rp 0.
func readState(file string) (threehalves.State, error) {
	f, err := os.Open(file)
	if os.IsNotExist(err) {
		return threehalves.State{}, nil
	} else if err != nil {
		return threehalves.State{}, errors.Wrap(err, "open state")
	}
	defer f.Close()

	s, err := threehalves.ReadState(f)
	if err != nil {
		return s, errors.Wrapf(err, "read %s", file)
	}
	return s, nil
}

func writeState(file string, s threehalves.State) error {
	return writeFile(file, s)
}

func readBins(file string) (threehalves.Bins, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(err, "open bins")
	}
	defer f.Close()

	b, err := threehalves.ReadBins(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", file)
	}
	return b, nil
}

func writeBins(file string, b threehalves.Bins) error {
	return writeFile(file, b)
}

// writeFile replaces file with the output of wt via a temporary file in the
// same directory.
func writeFile(file string, wt io.WriterTo) error {
	tmp, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return errors.Wrapf(err, "write %s", file)
	}
	defer os.Remove(tmp.Name())

	if _, err := wt.WriteTo(tmp); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", file)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write %s", file)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return errors.Wrapf(err, "write %s", file)
	}
	return nil
}
