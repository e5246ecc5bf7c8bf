package os9

import (
	"github.com/chipshift/cocofs/internal/errs"
	"github.com/chipshift/cocofs/sector"
)

const segmentSize = 5

// Segment is one (LSN, sector-count) run in a file descriptor's segment
// list.
type Segment struct {
	LSN   int
	Count int
}

// FileDescriptor is the parsed 256-byte OS-9 file descriptor.
type FileDescriptor struct {
	Attributes int
	OwnerID    int
	Modified   Date
	LinkCount  int
	Size       int
	Created    Date
	Segments   []Segment
}

// IsDirectory reports whether bit 7 of Attributes is set.
func (fd FileDescriptor) IsDirectory() bool {
	return fd.Attributes&0x80 != 0
}

func readFileDescriptor(img *sector.Image, lsn int) (FileDescriptor, error) {
	data, err := img.ReadLSN(lsn)
	if err != nil {
		return FileDescriptor{}, errs.Wrap("readFileDescriptor", errs.InvalidImage, err)
	}

	fd := FileDescriptor{
		Attributes: int(data[0x00]),
		OwnerID:    be16(data[0x01:0x03]),
		Modified: Date{
			Year:   int(data[0x03]),
			Month:  int(data[0x04]),
			Day:    int(data[0x05]),
			Hour:   int(data[0x06]),
			Minute: int(data[0x07]),
		},
		LinkCount: int(data[0x08]),
		Size:      int(data[0x09])<<24 | int(data[0x0A])<<16 | int(data[0x0B])<<8 | int(data[0x0C]),
		Created: Date{
			Year:  int(data[0x0D]),
			Month: int(data[0x0E]),
			Day:   int(data[0x0F]),
		},
	}

	offset := 0x10
	for offset+segmentSize <= sector.Size {
		lsn := be24(data[offset : offset+3])
		count := be16(data[offset+3 : offset+5])
		if count == 0 {
			break
		}
		fd.Segments = append(fd.Segments, Segment{LSN: lsn, Count: count})
		offset += segmentSize
	}

	return fd, nil
}

// readFileData concatenates every segment's sectors and trims to Size,
// per coco_dsk_os9.py's read_file_data.
func readFileData(img *sector.Image, fd FileDescriptor) ([]byte, error) {
	var out []byte
	for _, seg := range fd.Segments {
		for i := 0; i < seg.Count; i++ {
			data, err := img.ReadLSN(seg.LSN + i)
			if err != nil {
				return nil, errs.Wrap("readFileData", errs.InvalidImage, err)
			}
			out = append(out, data...)
		}
	}
	if fd.Size < len(out) {
		out = out[:fd.Size]
	}
	return out, nil
}
