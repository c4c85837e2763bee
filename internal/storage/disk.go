// Package storage is the photo sidecar: uploaded bytes live as plain files in
// one directory, and database rows hold only relative references into it.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Disk struct {
	dir string
}

// NewDisk ensures the upload directory exists and returns a Disk rooted there.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Dir() string {
	return d.dir
}

// Filename generates a unique stored name preserving the original extension.
func (d *Disk) Filename(original string) string {
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(original))
}

// Path resolves a stored or referenced name to an absolute location inside the
// upload dir. Only the base name is used, so references like "/uploads/x.jpg"
// cannot escape the directory.
func (d *Disk) Path(name string) string {
	return filepath.Join(d.dir, filepath.Base(name))
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (d *Disk) Remove(name string) error {
	err := os.Remove(d.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
