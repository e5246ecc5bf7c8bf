package os9

import (
	"io"
	"strings"

	"github.com/chipshift/cocofs/internal/errs"
	"github.com/chipshift/cocofs/internal/fs"
	"github.com/chipshift/cocofs/internal/ioutil"
	"github.com/chipshift/cocofs/internal/logger"
	"github.com/chipshift/cocofs/sector"
)

type options struct {
	log *logger.Logger
}

// Option configures Mount.
type Option func(*options)

// WithLogger attaches a logger that traces bitmap and segment-list walks.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Volume is a mounted, read-only OS-9 image.
type Volume struct {
	img     *sector.Image
	dd      DiskDescriptor
	bmp     bitmap
	entries []DirEntry
	log     *logger.Logger
}

func resolveOptions(opts []Option) options {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// Mount parses LSN 0, the allocation bitmap, and the root directory.
func Mount(buf []byte, opts ...Option) (*Volume, error) {
	o := resolveOptions(opts)
	log := o.log.With("os9")

	img := sector.Load(buf, log)

	lsn0, err := img.ReadLSN(0)
	if err != nil {
		return nil, errs.Wrap("Mount", errs.InvalidImage, err)
	}
	dd, err := parseDescriptor(lsn0)
	if err != nil {
		return nil, err
	}

	bmpSectors := bitmapSectorCount(dd.AllocMapBytes)
	bmpData := make([]byte, 0, bmpSectors*sector.Size)
	for i := 0; i < bmpSectors; i++ {
		data, err := img.ReadLSN(1 + i)
		if err != nil {
			return nil, errs.Wrap("Mount", errs.InvalidImage, err)
		}
		bmpData = append(bmpData, data...)
	}
	if len(bmpData) > dd.AllocMapBytes {
		bmpData = bmpData[:dd.AllocMapBytes]
	}
	bmp := parseBitmap(bmpData, dd.SectorsPerCluster, dd.TotalSectors)

	rootFD, err := readFileDescriptor(img, dd.RootDirLSN)
	if err != nil {
		return nil, err
	}
	dirData, err := readFileData(img, rootFD)
	if err != nil {
		return nil, err
	}

	var entries []DirEntry
	for off := 0; off+dirEntrySize <= len(dirData); off += dirEntrySize {
		if e, ok := parseDirEntry(dirData[off : off+dirEntrySize]); ok {
			entries = append(entries, e)
		}
	}

	if log != nil {
		log.Infof("mounted OS-9 volume %q: %d root entries, %d free clusters", dd.DiskName, len(entries), bmp.freeClusters())
	}

	return &Volume{img: img, dd: dd, bmp: bmp, entries: entries, log: log}, nil
}

// MountFile reads path and mounts it.
func MountFile(path string, opts ...Option) (*Volume, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errs.Wrap("MountFile", errs.InvalidImage, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errs.Wrap("MountFile", errs.InvalidImage, err)
	}
	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, errs.Wrap("MountFile", errs.InvalidImage, err)
	}

	return Mount(buf, opts...)
}

// DiskInfo returns the parsed disk descriptor.
func (v *Volume) DiskInfo() DiskDescriptor {
	return v.dd
}

// List returns the root directory's entries.
func (v *Volume) List() []DirEntry {
	out := make([]DirEntry, len(v.entries))
	copy(out, v.entries)
	return out
}

func (v *Volume) lookup(name string) (DirEntry, bool) {
	for _, e := range v.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return DirEntry{}, false
}

// Extract reads name's file descriptor and returns its bytes.
func (v *Volume) Extract(name string) ([]byte, error) {
	e, ok := v.lookup(name)
	if !ok {
		return nil, errs.New("Extract", errs.NotFound)
	}
	if e.Attrs.Directory {
		return nil, errs.New("Extract", errs.IsDirectory)
	}

	fd, err := readFileDescriptor(v.img, e.FDLsn)
	if err != nil {
		return nil, err
	}
	data, err := readFileData(v.img, fd)
	if err != nil {
		return nil, err
	}

	if v.log != nil {
		v.log.Debugf("extracted %q: %d bytes over %d segments", name, len(data), len(fd.Segments))
	}
	return data, nil
}

// ExtractTo writes name's file bytes to outPath.
func (v *Volume) ExtractTo(name, outPath string) error {
	data, err := v.Extract(name)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(outPath, data)
}

// Delete always fails: OS-9 volumes are read-only.
func (v *Volume) Delete(name string) error {
	return errs.New("Delete", errs.ReadOnly)
}

// Insert always fails: OS-9 volumes are read-only.
func (v *Volume) Insert(name string, data []byte) error {
	return errs.New("Insert", errs.ReadOnly)
}

// Rename always fails: OS-9 volumes are read-only.
func (v *Volume) Rename(oldName, newName string) error {
	return errs.New("Rename", errs.ReadOnly)
}
