package iso8211

import (
	"github.com/vesseltrace/enc57/internal/encerr"
)

// LeaderSize is the fixed size of an ISO 8211 record leader (ISO/IEC 8211
// §6.1): 24 bytes of ASCII-encoded structural integers.
const LeaderSize = 24

// Leader is the parsed first 24 bytes of any record (DDR or data record).
type Leader struct {
	RecordLength       int
	InterchangeLevel   byte
	LeaderID           byte // 'L' for DDR, 'D' for data records
	InLineCodeExt      byte
	BaseAddress        int
	FieldLengthSize    int // size (digits) of directory "field length" entries
	FieldPositionSize  int // size (digits) of directory "field position" entries
	FieldTagSize       int // size (bytes) of directory tag entries
}

// parseLeader decodes the fixed 24-byte leader at the cursor's current
// position. Byte offsets per ISO/IEC 8211 §6.1 / S-57 Part 3 §7.2.1.
func parseLeader(c *ByteCursor) (Leader, error) {
	start := c.Offset()
	raw, err := c.ReadBytes(LeaderSize)
	if err != nil {
		return Leader{}, encerr.Wrap(encerr.LeaderMalformed, "short leader", err)
	}

	lc := NewByteCursor(raw)

	recLen, err := lc.ReadFixedASCIIInt(5)
	if err != nil {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed, "bad record length", start)
	}

	interchangeLevel, err := lc.ReadBytes(1)
	if err != nil {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed, "truncated leader", start)
	}
	leaderIDb, err := lc.ReadBytes(1)
	if err != nil {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed, "truncated leader", start)
	}
	inlineCode, err := lc.ReadBytes(1)
	if err != nil {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed, "truncated leader", start)
	}
	if leaderIDb[0] != 'L' && leaderIDb[0] != 'D' {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed,
			"leader identifier must be 'L' or 'D'", start+6)
	}

	// Bytes 8-11 (version, application indicator, field control length) are
	// not used by the decoder; skip to the base address field at byte 12.
	if err := lc.Seek(12); err != nil {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed, "truncated leader", start)
	}
	baseAddr, err := lc.ReadFixedASCIIInt(5)
	if err != nil {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed, "bad base address", start)
	}

	if err := lc.Seek(20); err != nil {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed, "truncated leader", start)
	}
	entryMap, err := lc.ReadBytes(4)
	if err != nil {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed, "bad entry map", start)
	}

	fieldLenSize := int(entryMap[0] - '0')
	fieldPosSize := int(entryMap[1] - '0')
	tagSize := int(entryMap[3] - '0')
	if fieldLenSize <= 0 || fieldPosSize <= 0 || tagSize <= 0 {
		return Leader{}, encerr.AtOffset(encerr.LeaderMalformed,
			"entry map sizes must be positive", start+20)
	}

	return Leader{
		RecordLength:      int(recLen),
		InterchangeLevel:  interchangeLevel[0],
		LeaderID:          leaderIDb[0],
		InLineCodeExt:     inlineCode[0],
		BaseAddress:       int(baseAddr),
		FieldLengthSize:   fieldLenSize,
		FieldPositionSize: fieldPosSize,
		FieldTagSize:      tagSize,
	}, nil
}

// DirEntry is one directory entry: a (tag, length, position) triple. Position
// is relative to the leader's BaseAddress.
type DirEntry struct {
	Tag      string
	Length   int
	Position int
}

// parseDirectory reads the repeating directory entries following the
// leader, terminated by a field terminator, per ISO/IEC 8211 §6.2.
func parseDirectory(c *ByteCursor, l Leader) ([]DirEntry, error) {
	entryWidth := l.FieldTagSize + l.FieldLengthSize + l.FieldPositionSize
	dirStart := c.Offset()
	dirLen := l.BaseAddress - LeaderSize - 1 // exclude the trailing field terminator
	if dirLen < 0 {
		return nil, encerr.AtOffset(encerr.LeaderMalformed,
			"base address precedes end of leader", dirStart)
	}
	if entryWidth == 0 || dirLen%entryWidth != 0 {
		return nil, encerr.AtOffset(encerr.LeaderMalformed,
			"directory length not a multiple of entry width", dirStart)
	}

	raw, err := c.ReadBytes(dirLen)
	if err != nil {
		return nil, encerr.Wrap(encerr.LeaderMalformed, "truncated directory", err)
	}
	term, err := c.ReadBytes(1)
	if err != nil || term[0] != FieldTerminator {
		return nil, encerr.AtOffset(encerr.LeaderMalformed,
			"directory not terminated by field terminator", c.Offset())
	}

	n := dirLen / entryWidth
	entries := make([]DirEntry, 0, n)
	dc := NewByteCursor(raw)
	for i := 0; i < n; i++ {
		tagBytes, err := dc.ReadBytes(l.FieldTagSize)
		if err != nil {
			return nil, encerr.AtOffset(encerr.LeaderMalformed, "truncated directory entry", dirStart)
		}
		length, err := dc.ReadFixedASCIIInt(l.FieldLengthSize)
		if err != nil {
			return nil, encerr.AtOffset(encerr.LeaderMalformed, "bad directory field length", dirStart)
		}
		position, err := dc.ReadFixedASCIIInt(l.FieldPositionSize)
		if err != nil {
			return nil, encerr.AtOffset(encerr.LeaderMalformed, "bad directory field position", dirStart)
		}
		entries = append(entries, DirEntry{
			Tag:      string(tagBytes),
			Length:   int(length),
			Position: int(position),
		})
	}
	return entries, nil
}
