// Package os9 implements a read-only reader for the OS-9 RBF (Random
// Block File) file system as found on TRS-80 Color Computer disk images:
// the LSN-0 disk descriptor, the allocation bitmap, file descriptors and
// their segment lists, and the hierarchical directory entries built on
// top of them.
//
// Grounded on original_source/coco_dsk_os9.py, the authoritative source
// for every field offset and the format-detection heuristic, and on the
// digler's internal/disk.Volume read/stat surface.
package os9

import (
	"fmt"

	"github.com/chipshift/cocofs/internal/errs"
	"github.com/chipshift/cocofs/sector"
)

// DiskDescriptor is the parsed LSN-0 disk descriptor.
type DiskDescriptor struct {
	TotalSectors      int
	TracksPerSide     int
	AllocMapBytes     int
	SectorsPerCluster int
	RootDirLSN        int
	OwnerID           int
	Attributes        int
	DiskID            int
	Format            int
	SectorsPerTrack   int
	Reserved          int
	BootstrapLSN      int
	BootstrapSize     int
	Created           Date
	DiskName          string
	Options           int
}

// Density reports "Single" or "Double" from bit 0 of Format, per
// coco_dsk_os9.py's show_disk_info.
func (d DiskDescriptor) Density() string {
	if d.Format&0x01 == 0 {
		return "Single"
	}
	return "Double"
}

// Sides reports 1 or 2 from bit 1 of Format.
func (d DiskDescriptor) Sides() int {
	if d.Format&0x02 == 0 {
		return 1
	}
	return 2
}

// ClusterSize is SectorsPerCluster * sector.Size.
func (d DiskDescriptor) ClusterSize() int {
	return d.SectorsPerCluster * sector.Size
}

// Date is a decoded OS-9 timestamp. Hour/Minute are zero for the 3-byte
// creation-date form.
type Date struct {
	Year, Month, Day, Hour, Minute int
}

func (dt Date) String() string {
	return fmt.Sprintf("%02d/%02d/%02d", dt.Year, dt.Month, dt.Day)
}

func be24(b []byte) int { return int(b[0])<<16 | int(b[1])<<8 | int(b[2]) }
func be16(b []byte) int { return int(b[0])<<8 | int(b[1]) }

// parseDescriptor reads LSN 0's fixed fields.
func parseDescriptor(lsn0 []byte) (DiskDescriptor, error) {
	if len(lsn0) < 0x3F {
		return DiskDescriptor{}, errs.New("parseDescriptor", errs.InvalidImage)
	}

	d := DiskDescriptor{
		TotalSectors:      be24(lsn0[0x00:0x03]),
		TracksPerSide:     int(lsn0[0x03]),
		AllocMapBytes:     be16(lsn0[0x04:0x06]),
		SectorsPerCluster: be16(lsn0[0x06:0x08]),
		RootDirLSN:        be24(lsn0[0x08:0x0B]),
		OwnerID:           be16(lsn0[0x0B:0x0D]),
		Attributes:        int(lsn0[0x0D]),
		DiskID:            be16(lsn0[0x0E:0x10]),
		Format:            int(lsn0[0x10]),
		SectorsPerTrack:   be16(lsn0[0x11:0x13]),
		Reserved:          be16(lsn0[0x13:0x15]),
		BootstrapLSN:      be24(lsn0[0x15:0x18]),
		BootstrapSize:     be16(lsn0[0x18:0x1A]),
		Created: Date{
			Year:  int(lsn0[0x1A]),
			Month: int(lsn0[0x1B]),
			Day:   int(lsn0[0x1C]),
			Hour:  int(lsn0[0x1D]),
			Minute: int(lsn0[0x1E]),
		},
	}

	nameBytes := lsn0[0x1F:0x3F]
	name := make([]byte, 0, len(nameBytes))
	for _, b := range nameBytes {
		if b == 0x00 {
			break
		}
		name = append(name, b)
	}
	d.DiskName = string(name)

	if len(lsn0) > 0x3F {
		d.Options = int(lsn0[0x3F])
	}

	return d, nil
}

// Detect applies a six-condition heuristic to guess whether buf is an
// OS-9 image.
func Detect(buf []byte) bool {
	if len(buf) < 0x3F {
		return false
	}

	dTot := be24(buf[0x00:0x03])
	dMap := be16(buf[0x04:0x06])
	dBit := be16(buf[0x06:0x08])
	dDir := be24(buf[0x08:0x0B])
	dSpt := be16(buf[0x11:0x13])

	expected := len(buf) / sector.Size
	if abs(dTot-expected) > 10 {
		return false
	}
	if dSpt < 1 || dSpt > 255 {
		return false
	}
	switch dBit {
	case 1, 2, 4, 8, 16, 32, 64:
	default:
		return false
	}
	if dMap < 1 || dMap > 2048 {
		return false
	}
	if dDir < 1 || dDir >= dTot {
		return false
	}

	nameBytes := buf[0x1F:0x3F]
	for _, b := range nameBytes {
		if b != 0x00 && (b < 0x20 || b > 0x7E) {
			return false
		}
	}

	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
