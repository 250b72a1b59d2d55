package css

// Code generated by running "stringer -type Token,TypeFlag" by hand; the
// enums rarely change so the output is checked in rather than regenerated
// on every build.

func (t Token) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case EOF:
		return "EOF"
	case S:
		return "S"
	case Ident:
		return "Ident"
	case Function:
		return "Function"
	case AtKeyword:
		return "AtKeyword"
	case Hash:
		return "Hash"
	case String:
		return "String"
	case BadString:
		return "BadString"
	case URL:
		return "URL"
	case BadURL:
		return "BadURL"
	case Delim:
		return "Delim"
	case Number:
		return "Number"
	case Percentage:
		return "Percentage"
	case Dimension:
		return "Dimension"
	case UnicodeRange:
		return "UnicodeRange"
	case IncludeMatch:
		return "IncludeMatch"
	case DashMatch:
		return "DashMatch"
	case PrefixMatch:
		return "PrefixMatch"
	case SuffixMatch:
		return "SuffixMatch"
	case SubstringMatch:
		return "SubstringMatch"
	case Column:
		return "Column"
	case CDO:
		return "CDO"
	case CDC:
		return "CDC"
	case Colon:
		return "Colon"
	case Semicolon:
		return "Semicolon"
	case Comma:
		return "Comma"
	case LeftBrack:
		return "LeftBrack"
	case RightBrack:
		return "RightBrack"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case LeftBrace:
		return "LeftBrace"
	case RightBrace:
		return "RightBrace"
	default:
		return "Token(?)"
	}
}

func (f TypeFlag) String() string {
	switch f {
	case TypeFlagNone:
		return "TypeFlagNone"
	case TypeFlagID:
		return "TypeFlagID"
	case TypeFlagNumber:
		return "TypeFlagNumber"
	case TypeFlagInteger:
		return "TypeFlagInteger"
	default:
		return "TypeFlag(?)"
	}
}
