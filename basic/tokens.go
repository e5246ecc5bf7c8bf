// Package basic implements the tokenized-BASIC detokenizer: it turns the
// stored-program byte stream used by Color BASIC / Extended Color BASIC
// (and the Super Extended/Disk BASIC token extensions) back into
// readable source text.
//
// Grounded on original_source/coco_detokenizer.py, the authoritative
// source for both token tables and the line-decoding algorithm.
package basic

// t1 is the primary token table, indexed by byte value 0x80..0xF8.
// Reproduced verbatim from the source-of-truth listing; do not reorder or
// "clean up" entries — callers depend on exact token spelling.
var t1 = map[byte]string{
	0x80: "FOR", 0x81: "GO", 0x82: "REM", 0x83: "'", 0x84: "ELSE", 0x85: "IF", 0x86: "DATA", 0x87: "PRINT",
	0x88: "ON", 0x89: "INPUT", 0x8A: "END", 0x8B: "NEXT", 0x8C: "DIM", 0x8D: "READ", 0x8E: "RUN",
	0x8F: "RESTORE", 0x90: "RETURN", 0x91: "STOP", 0x92: "POKE", 0x93: "CONT", 0x94: "LIST", 0x95: "CLEAR",
	0x96: "NEW", 0x97: "CLOAD", 0x98: "CSAVE", 0x99: "OPEN", 0x9A: "CLOSE", 0x9B: "LLIST", 0x9C: "SET",
	0x9D: "RESET", 0x9E: "CLS", 0x9F: "MOTOR", 0xA0: "SOUND", 0xA1: "AUDIO", 0xA2: "EXEC", 0xA3: "SKIPF",
	0xA4: "TAB(", 0xA5: "TO", 0xA6: "SUB", 0xA7: "THEN", 0xA8: "NOT", 0xA9: "STEP", 0xAA: "OFF",
	0xAB: "+", 0xAC: "-", 0xAD: "*", 0xAE: "/", 0xAF: "^", 0xB0: "AND", 0xB1: "OR", 0xB2: ">",
	0xB3: "=", 0xB4: "<", 0xB5: "DEL", 0xB6: "EDIT", 0xB7: "TRON", 0xB8: "TROFF", 0xB9: "DEF",
	0xBA: "LET", 0xBB: "LINE", 0xBC: "PCLS", 0xBD: "PSET", 0xBE: "PRESET", 0xBF: "SCREEN",
	0xC0: "PCLEAR", 0xC1: "COLOR", 0xC2: "CIRCLE", 0xC3: "PAINT", 0xC4: "GET", 0xC5: "PUT",
	0xC6: "DRAW", 0xC7: "PCOPY", 0xC8: "PMODE", 0xC9: "PLAY", 0xCA: "DLOAD", 0xCB: "RENUM",
	0xCC: "FN", 0xCD: "USING", 0xCE: "DIR", 0xCF: "DRIVE", 0xD0: "FIELD", 0xD1: "FILES",
	0xD2: "KILL", 0xD3: "LOAD", 0xD4: "LSET", 0xD5: "MERGE", 0xD6: "RENAME", 0xD7: "RSET",
	0xD8: "SAVE", 0xD9: "WRITE", 0xDA: "VERIFY", 0xDB: "UNLOAD", 0xDC: "DSKINI", 0xDD: "BACKUP",
	0xDE: "COPY", 0xDF: "DSKI$", 0xE0: "DSKO$",

	// Super Extended BASIC / Disk Extended BASIC tokens.
	0xE2: "WIDTH",
	0xE3: "PALETTE",
	0xE4: "HSCREEN",
	0xE6: "HCLS",
	0xE7: "HCOLOR",
	0xE8: "HPAINT",
	0xE9: "HCIRCLE",
	0xEA: "HLINE",
	0xEB: "HGET",
	0xEC: "HPUT",
	0xED: "HBUFF",
	0xEE: "HPRINT",
	0xEF: "ERR",
	0xF0: "BRK",
	0xF3: "HSET",
	0xF4: "HRESET",
	0xF5: "HDRAW",
	0xF6: "CMP",
	0xF7: "RGB",
	0xF8: "ATTR",
}

// t2 is the extended token table reached via the 0xFF escape, indexed by
// byte value 0x80..0xAC.
var t2 = map[byte]string{
	0x80: "SGN", 0x81: "INT", 0x82: "ABS", 0x83: "USR", 0x84: "RND", 0x85: "SIN", 0x86: "PEEK",
	0x87: "LEN", 0x88: "STR$", 0x89: "VAL", 0x8A: "ASC", 0x8B: "CHR$", 0x8C: "EOF", 0x8D: "JOYSTK",
	0x8E: "LEFT$", 0x8F: "RIGHT$", 0x90: "MID$", 0x91: "POINT", 0x92: "INKEY$", 0x93: "MEM",
	0x94: "ATN", 0x95: "COS", 0x96: "TAN", 0x97: "EXP", 0x98: "FIX", 0x99: "LOG", 0x9A: "POS",
	0x9B: "SQR", 0x9C: "HEX$", 0x9D: "VARPTR", 0x9E: "INSTR", 0x9F: "TIMER", 0xA0: "PPOINT",
	0xA1: "STRING$", 0xA2: "CVN", 0xA3: "FREE", 0xA4: "LOC", 0xA5: "LOF", 0xA6: "MKN$", 0xA7: "AS",

	// CoCo 3 Super Extended BASIC functions (0xFF + second byte).
	0xA8: "LPEEK",
	0xA9: "BUTTON",
	0xAA: "HPOINT",
	0xAB: "ERNO",
	0xAC: "ERLIN",
}
