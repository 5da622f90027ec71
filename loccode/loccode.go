// Package loccode maps a (source file, line) pair to a short code that is
// easy to read aloud and type back, for tagging log lines.
package loccode

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Alphabet holds the code symbols. Vowels and look-alike glyphs are excluded.
const Alphabet = "2346789BCDFGHJKMNPRSTVWXYZ"

const (
	// CodeLength is the number of symbols in a code.
	CodeLength = 4
	// KeySpace is the number of distinct keys; valid keys are 1..KeySpace-1.
	KeySpace uint32 = 26 * 26 * 26 * 26
)

var typoFixer = strings.NewReplacer("0", "O", "1", "I", "5", "S")

// Encode hashes the base name of file together with line into a key in
// [1, KeySpace-1]. Zero is reserved for "no location".
func Encode(file string, line int) uint32 {
	if i := strings.LastIndexAny(file, `/\`); i >= 0 {
		file = file[i+1:]
	}
	h := uint64(uint32(xxhash.Sum64String(file))) + uint64(uint32(line))
	return uint32(h%uint64(KeySpace-1)) + 1
}

// ToCode renders key as a CodeLength-symbol string, most significant symbol
// first. Zero yields "" and keys outside the key space yield "????".
func ToCode(key uint32) string {
	if key == 0 {
		return ""
	}
	if key >= KeySpace {
		return strings.Repeat("?", CodeLength)
	}

	var buf [CodeLength]byte
	for i := CodeLength - 1; i >= 0; i-- {
		buf[i] = Alphabet[key%26]
		key /= 26
	}
	return string(buf[:])
}

// FromCode parses a code back into its key. Case and surrounding whitespace
// are ignored and common typos are folded; anything else returns 0.
func FromCode(code string) uint32 {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != CodeLength {
		return 0
	}
	code = typoFixer.Replace(code)

	var key uint32
	for i := 0; i < len(code); i++ {
		idx := strings.IndexByte(Alphabet, code[i])
		if idx < 0 {
			return 0
		}
		key = key*26 + uint32(idx)
	}
	return key
}

// Code is shorthand for ToCode(Encode(file, line)).
func Code(file string, line int) string {
	return ToCode(Encode(file, line))
}
