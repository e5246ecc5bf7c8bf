// Package sector implements the byte-offset arithmetic shared by the decb
// and os9 packages: an in-memory image buffer, an optional JVC header, and
// fixed 256-byte sector reads/writes against it.
//
// Modeled on digler's internal/disk.DiskInfo (ReadAt/WriteAt over an
// owned byte source) and on coco_dsk.py's
// _parse_jvc_header/_get_sector_offset/read_sector/write_sector.
package sector

import (
	"fmt"

	"github.com/chipshift/cocofs/internal/errs"
	"github.com/chipshift/cocofs/internal/logger"
)

// Size is the fixed physical sector size for every format this library
// supports.
const Size = 256

// Header is the optional 1..5-byte JVC prefix. Each field further along the
// prefix is only populated if the prefix is at least that long; fields past
// the end of a short header keep their default.
type Header struct {
	SectorsPerTrack int
	Sides           int
	SectorSizeCode  int
	FirstSectorID   int
	Attribute       int
	Size            int // header bytes before the sector stream (file size mod 256, so 0..255); only the first 5 are decoded
}

// SectorSize returns the nominal sector size implied by SectorSizeCode
// (128 << code). This is informational only: all offset arithmetic in this
// package uses the fixed 256-byte Size constant, matching the source's
// behavior of reading SectorSize into the header but never using it for
// addressing.
func (h Header) SectorSize() int {
	return 128 << h.SectorSizeCode
}

func defaultHeader() Header {
	return Header{
		SectorsPerTrack: 18,
		Sides:           1,
		SectorSizeCode:  1, // 128 << 1 == 256
		FirstSectorID:   1,
		Attribute:       0,
	}
}

// Image owns a mutable disk-image buffer plus the header-size offset that
// precedes the raw sector stream.
type Image struct {
	data   []byte
	header Header
	log    *logger.Logger
}

// Load wraps an existing byte buffer (e.g. read from a file) as an Image,
// inferring the JVC header from file_size mod 256, per coco_dsk.py's
// _parse_jvc_header.
func Load(data []byte, log *logger.Logger) *Image {
	h := defaultHeader()
	h.Size = len(data) % Size

	if h.Size >= 1 {
		h.SectorsPerTrack = int(data[0])
	}
	if h.Size >= 2 {
		h.Sides = int(data[1])
	}
	if h.Size >= 3 {
		h.SectorSizeCode = int(data[2])
	}
	if h.Size >= 4 {
		h.FirstSectorID = int(data[3])
	}
	if h.Size >= 5 {
		h.Attribute = int(data[4])
	}

	if log != nil {
		log.Debugf("loaded image: %d bytes, header=%d, sectors/track=%d", len(data), h.Size, h.SectorsPerTrack)
	}

	return &Image{data: data, header: h, log: log}
}

// New builds a blank Image of the given size filled with 0xFF and with no
// JVC header, used by Format.
func New(size int, log *logger.Logger) *Image {
	data := make([]byte, size)
	for i := range data {
		data[i] = 0xFF
	}
	return &Image{
		data:   data,
		header: defaultHeader(),
		log:    log,
	}
}

// NewWithHeader builds a blank Image prefixed with a 5-byte JVC header
// encoding sectorsPerTrack/sides, used by Format when addJVCHeader is set.
func NewWithHeader(size, sectorsPerTrack, sides int, log *logger.Logger) *Image {
	h := defaultHeader()
	h.SectorsPerTrack = sectorsPerTrack
	h.Sides = sides
	h.Size = 5

	data := make([]byte, 5+size)
	data[0] = byte(h.SectorsPerTrack)
	data[1] = byte(h.Sides)
	data[2] = byte(h.SectorSizeCode)
	data[3] = byte(h.FirstSectorID)
	data[4] = byte(h.Attribute)
	for i := 5; i < len(data); i++ {
		data[i] = 0xFF
	}

	return &Image{data: data, header: h, log: log}
}

// Header returns the parsed/assumed JVC header.
func (img *Image) Header() Header { return img.header }

// Bytes returns the full buffer, header included.
func (img *Image) Bytes() []byte { return img.data }

// Len returns the size of the raw sector stream, excluding the header.
func (img *Image) Len() int { return len(img.data) - img.header.Size }

func (img *Image) offset(track, sector int) int {
	sectorNum := track*img.header.SectorsPerTrack + (sector - 1)
	return img.header.Size + sectorNum*Size
}

// ReadSector returns a copy of the 256-byte sector at (track, sector).
// Sectors are numbered from 1 within a track.
func (img *Image) ReadSector(track, sector int) ([]byte, error) {
	off := img.offset(track, sector)
	if off < 0 || off+Size > len(img.data) {
		return nil, errs.New(fmt.Sprintf("ReadSector(%d,%d)", track, sector), errs.InvalidImage)
	}
	out := make([]byte, Size)
	copy(out, img.data[off:off+Size])
	return out, nil
}

// WriteSector writes exactly 256 bytes at (track, sector).
func (img *Image) WriteSector(track, sector int, data []byte) error {
	if len(data) != Size {
		return errs.New(fmt.Sprintf("WriteSector(%d,%d)", track, sector), errs.InvalidImage)
	}
	off := img.offset(track, sector)
	if off < 0 || off+Size > len(img.data) {
		return errs.New(fmt.Sprintf("WriteSector(%d,%d)", track, sector), errs.InvalidImage)
	}
	copy(img.data[off:off+Size], data)
	if img.log != nil {
		img.log.Debugf("wrote sector track=%d sector=%d", track, sector)
	}
	return nil
}

// ReadLSN returns a copy of the 256-byte sector at logical sector number
// lsn (OS-9 addressing: sectors numbered from 0 across the whole image, no
// header offset applies to OS-9 images).
func (img *Image) ReadLSN(lsn int) ([]byte, error) {
	off := lsn * Size
	if lsn < 0 || off+Size > len(img.data) {
		return nil, errs.New(fmt.Sprintf("ReadLSN(%d)", lsn), errs.InvalidImage)
	}
	out := make([]byte, Size)
	copy(out, img.data[off:off+Size])
	return out, nil
}
