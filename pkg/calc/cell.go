package calc

import (
	"regexp"
	"strconv"
	"strings"
)

// cellAddrPattern matches a cell address: one or more letters followed
// by a row number with no leading zero (spec.md §3).
var cellAddrPattern = regexp.MustCompile(`^[A-Za-z]+[1-9][0-9]*$`)

// IsCellAddress reports whether tok matches the cell-address grammar.
func IsCellAddress(tok string) bool {
	return cellAddrPattern.MatchString(tok)
}

// SplitCellAddress splits a cell address into its uppercased column
// letters and its row number. It does not validate addr: for input that
// does not match IsCellAddress it returns the uppercased leading letters
// and a row of 0 when the remainder is not an integer.
func SplitCellAddress(addr string) (cols string, row int) {
	i := 0
	for i < len(addr) && isLetter(addr[i]) {
		i++
	}
	cols = strings.ToUpper(addr[:i])
	row, _ = strconv.Atoi(addr[i:])
	return cols, row
}

// IndexToLetters converts a positive column index to its bijective
// base-26 letter encoding: 1->A, 26->Z, 27->AA, 28->AB, ... (spec.md §3).
func IndexToLetters(index int) string {
	if index <= 0 {
		return ""
	}
	var letters []byte
	for index > 0 {
		index--
		letters = append([]byte{byte('A' + index%26)}, letters...)
		index /= 26
	}
	return string(letters)
}

// LettersToIndex converts an uppercase (or mixed-case) column-letter
// string to its 1-based index, the inverse of IndexToLetters.
func LettersToIndex(letters string) int {
	letters = strings.ToUpper(letters)
	index := 0
	for i := 0; i < len(letters); i++ {
		index = index*26 + int(letters[i]-'A'+1)
	}
	return index
}
