package css

// Unit is one of the small set of CSS 2.1 units a fixed.Int can carry.
type Unit uint8

// Recognised units. UnitNone marks a bare number (e.g. line-height: 1.5,
// z-index: 3) which carries no unit at all.
const (
	UnitNone Unit = iota
	UnitPX
	UnitEM
	UnitEX
	UnitIN
	UnitCM
	UnitMM
	UnitPT
	UnitPC
	UnitPCT // percentage
	UnitDEG
	UnitGRAD
	UnitRAD
	UnitS
	UnitMS
	UnitHZ
	UnitKHZ
)

func (u Unit) String() string {
	switch u {
	case UnitNone:
		return ""
	case UnitPX:
		return "px"
	case UnitEM:
		return "em"
	case UnitEX:
		return "ex"
	case UnitIN:
		return "in"
	case UnitCM:
		return "cm"
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	case UnitPC:
		return "pc"
	case UnitPCT:
		return "%"
	case UnitDEG:
		return "deg"
	case UnitGRAD:
		return "grad"
	case UnitRAD:
		return "rad"
	case UnitS:
		return "s"
	case UnitMS:
		return "ms"
	case UnitHZ:
		return "Hz"
	case UnitKHZ:
		return "kHz"
	default:
		return "Unit(?)"
	}
}

// unitFromIdent maps a dimension's unit identifier (ASCII case-insensitive,
// per CSS 2.1) to a Unit. ok is false for an unrecognised unit.
func unitFromIdent(b []byte) (Unit, bool) {
	switch {
	case asciiEqualFold(b, "px"):
		return UnitPX, true
	case asciiEqualFold(b, "em"):
		return UnitEM, true
	case asciiEqualFold(b, "ex"):
		return UnitEX, true
	case asciiEqualFold(b, "in"):
		return UnitIN, true
	case asciiEqualFold(b, "cm"):
		return UnitCM, true
	case asciiEqualFold(b, "mm"):
		return UnitMM, true
	case asciiEqualFold(b, "pt"):
		return UnitPT, true
	case asciiEqualFold(b, "pc"):
		return UnitPC, true
	case asciiEqualFold(b, "deg"):
		return UnitDEG, true
	case asciiEqualFold(b, "grad"):
		return UnitGRAD, true
	case asciiEqualFold(b, "rad"):
		return UnitRAD, true
	case asciiEqualFold(b, "s"):
		return UnitS, true
	case asciiEqualFold(b, "ms"):
		return UnitMS, true
	case asciiEqualFold(b, "hz"):
		return UnitHZ, true
	case asciiEqualFold(b, "khz"):
		return UnitKHZ, true
	}
	return UnitNone, false
}

// IsLength reports whether u is one of the absolute/relative length units
// (as opposed to angle, time, frequency, or percentage).
func (u Unit) IsLength() bool {
	switch u {
	case UnitPX, UnitEM, UnitEX, UnitIN, UnitCM, UnitMM, UnitPT, UnitPC:
		return true
	}
	return false
}
