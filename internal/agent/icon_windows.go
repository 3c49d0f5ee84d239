//go:build windows

package agent

import (
	"bytes"
	"encoding/binary"
	"image/png"

	"github.com/example/gomenu/internal/logging"
)

// platformIcon wraps the embedded PNG in an ICO container; the Windows
// tray rejects bare PNG data.
func platformIcon(data []byte) []byte {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logging.Debugf("agent: tray icon: %v", err)
		return data
	}
	ico, err := wrapPNGAsICO(data, cfg.Width, cfg.Height)
	if err != nil {
		logging.Debugf("agent: tray icon: %v", err)
		return data
	}
	return ico
}

// icoHeader is a single-image ICONDIR plus its ICONDIRENTRY. Vista and
// later accept a PNG payload directly after the entry.
type icoHeader struct {
	Reserved uint16
	Type     uint16
	Count    uint16
	Width    byte
	Height   byte
	Colors   byte
	Zero     byte
	Planes   uint16
	BitCount uint16
	Size     uint32
	Offset   uint32
}

func wrapPNGAsICO(pngData []byte, width, height int) ([]byte, error) {
	// 0 encodes 256 in the one-byte dimension fields.
	dim := func(v int) byte {
		if v <= 0 || v >= 256 {
			return 0
		}
		return byte(v)
	}
	hdr := icoHeader{
		Type:     1,
		Count:    1,
		Width:    dim(width),
		Height:   dim(height),
		Planes:   1,
		BitCount: 32,
		Size:     uint32(len(pngData)),
		Offset:   22,
	}
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}
	if _, err := buf.Write(pngData); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
