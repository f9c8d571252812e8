package accounting

import "strings"

// accountGroupLen is the length of the account prefix lettrage codes are scoped to.
const accountGroupLen = 3

// NormalizeLettrage rewrites every non-empty lettrage as a short alphabetic
// code. Codes are assigned per 3-character account group in first-seen order,
// so the output depends on entry order. The input slice is not modified.
func NormalizeLettrage(entries []AccountingEntry) []AccountingEntry {
	groups := make(map[string]map[string]string)
	out := make([]AccountingEntry, len(entries))

	for i, e := range entries {
		if e.Lettrage == "" {
			out[i] = e

			continue
		}

		group := AccountGroup(e.Account)

		codes, ok := groups[group]
		if !ok {
			codes = make(map[string]string)
			groups[group] = codes
		}

		code, seen := codes[e.Lettrage]
		if !seen {
			code = IndexToLetter(len(codes))
			codes[e.Lettrage] = code
		}

		out[i] = e.WithLettrage(code)
	}

	return out
}

// IndexToLetter maps 0..25 to A..Z, then 26..51 to AA..ZZ, 52.. to AAA and so on.
// The letter is repeated, it is not a positional base-26 code.
func IndexToLetter(index int) string {
	if index < 0 {
		return ""
	}

	letter := string(rune('A' + index%26))

	return strings.Repeat(letter, index/26+1)
}

// AccountGroup returns the account prefix lettrage codes are unique within.
func AccountGroup(account string) string {
	if len(account) <= accountGroupLen {
		return account
	}

	return account[:accountGroupLen]
}
