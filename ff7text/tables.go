package ff7text

const (
	// End terminates a string.
	End = 0xFF
	// Control prefixes a two-byte or argument-carrying control sequence.
	Control = 0xFE

	firstSpecial = 0xE0
	waitCode     = 0xDD
	strCode      = 0xE2
	newCode      = 0xE8
)

// escaped glyphs are prefixed with a backslash in decoded text.
const escaped = `\{}`

// normalGlyphs holds the glyph of every byte below firstSpecial.
var normalGlyphs = []rune(" !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~ ÄÅÇÉÑÖÜáàâäãåçéèêëíìîïñóòôöõúùûü♥°¢£↔→♪ßα  ´¨≠ÆØ∞±≤≥¥µ∂ΣΠπ⌡ªºΩæø¿¡¬√ƒ≈∆«»… ÀÃÕŒœ–—“”‘’÷◊ÿŸ⁄ ‹›ﬁﬂ■‧‚„‰ÂÊÁËÈÍÎÏÌÓÔ ÒÚÛÙıˆ˜¯˘˙˚¸˝˛ˇ")

var special = map[byte]string{
	0xE0: "{CHOICE}",
	0xE1: "\t",
	0xE2: ", ",
	0xE3: ".",
	0xE4: "…",
	0xE6: "⑬",
	0xE7: "\n",
	0xE8: "{NEW}",
	0xEA: "{CLOUD}",
	0xEB: "{BARRET}",
	0xEC: "{TIFA}",
	0xED: "{AERITH}",
	0xEE: "{RED XIII}",
	0xEF: "{YUFFIE}",
	0xF0: "{CAIT SITH}",
	0xF1: "{VINCENT}",
	0xF2: "{CID}",
	0xF3: "{PARTY #1}",
	0xF4: "{PARTY #2}",
	0xF5: "{PARTY #3}",
	0xF6: "〇",
	0xF7: "△",
	0xF8: "☐",
	0xF9: "✕",
}

var control = map[byte]string{
	0xD2: "{GRAY}",
	0xD3: "{BLUE}",
	0xD4: "{RED}",
	0xD5: "{PURPLE}",
	0xD6: "{GREEN}",
	0xD7: "{CYAN}",
	0xD8: "{YELLOW}",
	0xD9: "{WHITE}",
	0xDA: "{FLASH}",
	0xDB: "{RAINBOW}",
	0xDC: "{PAUSE}",
	0xDE: "{NUM}",
	0xDF: "{HEX}",
	0xE0: "{SCROLL}",
	0xE1: "{RNUM}",
	0xE9: "{FIXED}",
}

// Reverse lookups used by Encode.
var (
	glyphCode = map[rune][]byte{}
	tokenCode = map[string][]byte{}
)

func init() {
	for i, r := range normalGlyphs {
		if _, ok := glyphCode[r]; !ok {
			glyphCode[r] = []byte{byte(i)}
		}
	}
	for code, s := range special {
		if s[0] == '{' {
			tokenCode[s] = []byte{code}
			continue
		}
		if rs := []rune(s); len(rs) == 1 {
			if _, ok := glyphCode[rs[0]]; !ok {
				glyphCode[rs[0]] = []byte{code}
			}
		}
	}
	for code, s := range control {
		tokenCode[s] = []byte{Control, code}
	}
}
