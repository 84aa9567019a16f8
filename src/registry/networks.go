package registry

import (
	"sort"
	"strings"
)

// NetworkTable translates between native chain names and unified network
// codes. Unmapped values pass through unchanged.
type NetworkTable struct {
	// CodesByID maps native network ids to unified codes.
	CodesByID map[string]string
	// IDsByCode pins the native id of codes that several ids map to. Other
	// codes use the inverse of CodesByID, taking the lowest id.
	IDsByCode map[string]string
	// Replacements holds per-currency mainnet aliases, e.g. ETH: {ERC20: ETH}.
	Replacements map[string]map[string]string
}

// IDToCode converts a native network id to a unified network code.
func (t NetworkTable) IDToCode(networkID, currencyCode string) string {
	code := networkID
	if c, ok := t.CodesByID[networkID]; ok {
		code = c
	}
	if currencyCode != "" {
		if repl, ok := t.Replacements[currencyCode][code]; ok {
			code = repl
		}
	}
	return code
}

// CodeToID converts a unified network code to the native network id.
func (t NetworkTable) CodeToID(networkCode, currencyCode string) string {
	ids := t.idsByCode()
	if id, ok := ids[networkCode]; ok {
		return id
	}
	if currencyCode != "" {
		repl := t.Replacements[currencyCode]
		froms := make([]string, 0, len(repl))
		for from, to := range repl {
			if to == networkCode {
				froms = append(froms, from)
			}
		}
		sort.Strings(froms)
		for _, from := range froms {
			if id, ok := ids[from]; ok {
				return id
			}
		}
	}
	return networkCode
}

func (t NetworkTable) idsByCode() map[string]string {
	nativeIDs := make([]string, 0, len(t.CodesByID))
	for id := range t.CodesByID {
		nativeIDs = append(nativeIDs, id)
	}
	sort.Strings(nativeIDs)
	out := make(map[string]string, len(t.CodesByID)+len(t.IDsByCode))
	for _, id := range nativeIDs {
		code := t.CodesByID[id]
		if _, taken := out[code]; !taken {
			out[code] = id
		}
	}
	for code, id := range t.IDsByCode {
		out[code] = id
	}
	return out
}

// SplitCompound splits identifiers such as "USDT-TRC20" on the first
// delimiter. Identifiers without the delimiter return an empty network id.
func SplitCompound(compound, delimiter string) (currencyID, networkID string) {
	if delimiter == "" {
		return compound, ""
	}
	i := strings.Index(compound, delimiter)
	if i <= 0 || i+len(delimiter) >= len(compound) {
		return compound, ""
	}
	return compound[:i], compound[i+len(delimiter):]
}
