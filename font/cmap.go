package font

import (
	"errors"
	"io"

	xunicode "golang.org/x/text/encoding/unicode"

	"github.com/tsawler/textscan/contentstream"
	"github.com/tsawler/textscan/core"
)

// CMap maps character codes to Unicode (ToUnicode CMaps) or to CIDs
// (encoding CMaps of composite fonts). It also records the codespace
// ranges that decide how many bytes make up a code.
type CMap struct {
	Name     string
	Vertical bool

	codespaces []codespace

	// Single character mappings: charCode -> unicode string
	charMappings map[uint32]string
	// Range mappings, checked in order after charMappings
	rangeMappings []bfRange

	cidMappings map[uint32]uint32
	cidRanges   []cidRange
}

type codespace struct {
	low, high []byte
}

type bfRange struct {
	start, end uint32
	dst        []byte // UTF-16BE of the first code; the last unit increments
}

type cidRange struct {
	start, end uint32
	cid        uint32
}

// NewCMap creates a new empty CMap
func NewCMap() *CMap {
	return &CMap{
		charMappings: make(map[uint32]string),
		cidMappings:  make(map[uint32]uint32),
	}
}

var utf16be = xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)

// ParseCMap parses CMap program data. CMaps use the same token syntax as
// content streams: each begin/end block ends with an "end..." keyword whose
// operands are the block's entries. Malformed entries are skipped.
func ParseCMap(data []byte) (*CMap, error) {
	cm := NewCMap()
	p := contentstream.NewParser(data)
	var lastName core.Name
	found := false

	for {
		op, err := p.Next()
		if err == io.EOF {
			break
		}
		var syn *contentstream.SyntaxError
		if errors.As(err, &syn) {
			continue
		}
		if err != nil {
			return nil, err
		}

		args := op.Operands
		switch op.Operator {
		case "endcodespacerange":
			for i := 0; i+1 < len(args); i += 2 {
				lo, ok1 := args[i].(core.String)
				hi, ok2 := args[i+1].(core.String)
				if ok1 && ok2 && len(lo) == len(hi) && len(lo) > 0 && len(lo) <= 4 {
					cm.codespaces = append(cm.codespaces, codespace{[]byte(lo), []byte(hi)})
				}
			}
			found = true
		case "endbfchar":
			for i := 0; i+1 < len(args); i += 2 {
				src, ok := args[i].(core.String)
				if !ok {
					continue
				}
				if dst, ok := bfDestination(args[i+1]); ok {
					cm.charMappings[codeValue(src)] = dst
				}
			}
			found = true
		case "endbfrange":
			for i := 0; i+2 < len(args); i += 3 {
				cm.addBfRange(args[i], args[i+1], args[i+2])
			}
			found = true
		case "endcidchar":
			for i := 0; i+1 < len(args); i += 2 {
				src, ok1 := args[i].(core.String)
				cid, ok2 := core.Number(args[i+1])
				if ok1 && ok2 {
					cm.cidMappings[codeValue(src)] = uint32(cid)
				}
			}
			found = true
		case "endcidrange":
			for i := 0; i+2 < len(args); i += 3 {
				lo, ok1 := args[i].(core.String)
				hi, ok2 := args[i+1].(core.String)
				cid, ok3 := core.Number(args[i+2])
				if ok1 && ok2 && ok3 {
					cm.cidRanges = append(cm.cidRanges, cidRange{codeValue(lo), codeValue(hi), uint32(cid)})
				}
			}
			found = true
		case "def":
			if len(args) >= 2 {
				key, _ := args[len(args)-2].(core.Name)
				switch key {
				case "CMapName":
					if name, ok := args[len(args)-1].(core.Name); ok {
						cm.Name = string(name)
					}
				case "WMode":
					if v, ok := core.Number(args[len(args)-1]); ok {
						cm.Vertical = v == 1
					}
				}
			}
		case "usecmap":
			if len(args) > 0 {
				lastName, _ = args[len(args)-1].(core.Name)
				if base, ok := predefinedCMap(string(lastName)); ok {
					cm.codespaces = append(cm.codespaces, base.codespaces...)
				}
			}
		}
	}

	if !found {
		return nil, errors.New("no mappings in cmap")
	}
	return cm, nil
}

func (cm *CMap) addBfRange(loObj, hiObj, dstObj core.Object) {
	lo, ok1 := loObj.(core.String)
	hi, ok2 := hiObj.(core.String)
	if !ok1 || !ok2 {
		return
	}
	start, end := codeValue(lo), codeValue(hi)
	if end < start || end-start > 0xFFFF {
		return
	}

	switch dst := dstObj.(type) {
	case core.String:
		if len(dst) == 0 {
			return
		}
		cm.rangeMappings = append(cm.rangeMappings, bfRange{start, end, []byte(dst)})
	case core.Array:
		code := start
		for _, obj := range dst {
			if code > end {
				break
			}
			if s, ok := bfDestination(obj); ok {
				cm.charMappings[code] = s
			}
			code++
		}
	}
}

// bfDestination decodes a UTF-16BE destination string.
func bfDestination(obj core.Object) (string, bool) {
	s, ok := obj.(core.String)
	if !ok || len(s) == 0 {
		return "", false
	}
	return decodeUTF16BE([]byte(s)), true
}

func decodeUTF16BE(b []byte) string {
	if len(b) == 1 {
		return string(rune(b[0]))
	}
	out, err := utf16be.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

func codeValue(s core.String) uint32 {
	var v uint32
	for i := 0; i < len(s) && i < 4; i++ {
		v = v<<8 | uint32(s[i])
	}
	return v
}

// Lookup returns the Unicode text for a character code. ok is false when
// the CMap has no mapping for it.
func (cm *CMap) Lookup(code uint32) (string, bool) {
	if cm == nil {
		return "", false
	}
	if s, ok := cm.charMappings[code]; ok {
		return s, true
	}
	for _, r := range cm.rangeMappings {
		if code < r.start || code > r.end {
			continue
		}
		dst := append([]byte(nil), r.dst...)
		offset := code - r.start
		// add the offset to the final byte, carrying into the previous one
		for i := len(dst) - 1; i >= 0 && offset > 0; i-- {
			sum := uint32(dst[i]) + offset
			dst[i] = byte(sum)
			offset = sum >> 8
		}
		return decodeUTF16BE(dst), true
	}
	return "", false
}

// CID returns the CID for a character code of an encoding CMap.
func (cm *CMap) CID(code uint32) (uint32, bool) {
	if cm == nil {
		return 0, false
	}
	if cid, ok := cm.cidMappings[code]; ok {
		return cid, true
	}
	for _, r := range cm.cidRanges {
		if code >= r.start && code <= r.end {
			return r.cid + code - r.start, true
		}
	}
	return 0, false
}

// HasCodespace reports whether the CMap declares codespace ranges.
func (cm *CMap) HasCodespace() bool {
	return cm != nil && len(cm.codespaces) > 0
}

// NextCode reads one character code from the front of data using the
// codespace ranges. Bytes that match no range are consumed with the length
// of the shortest range.
func (cm *CMap) NextCode(data []byte) (code uint32, n int) {
	if len(data) == 0 {
		return 0, 0
	}
	shortest := 4
	for _, cs := range cm.codespaces {
		l := len(cs.low)
		if l < shortest {
			shortest = l
		}
		if l > len(data) {
			continue
		}
		if cs.contains(data[:l]) {
			return codeValue(core.String(data[:l])), l
		}
	}
	if shortest > len(data) {
		shortest = len(data)
	}
	return codeValue(core.String(data[:shortest])), shortest
}

func (cs codespace) contains(b []byte) bool {
	for i := range b {
		if b[i] < cs.low[i] || b[i] > cs.high[i] {
			return false
		}
	}
	return true
}

// predefinedCMap returns the predefined CMaps that matter for code
// splitting: Identity-H and Identity-V. Other predefined CMaps are treated
// as two-byte identity maps.
func predefinedCMap(name string) (*CMap, bool) {
	switch name {
	case "Identity-H", "Identity-V":
		cm := NewCMap()
		cm.Name = name
		cm.Vertical = name == "Identity-V"
		cm.codespaces = []codespace{{[]byte{0, 0}, []byte{0xFF, 0xFF}}}
		return cm, true
	}
	return nil, false
}
