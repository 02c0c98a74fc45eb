package registry

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"
)

// infrastructureChains are primary-network chain names that are not L1s
var infrastructureChains = map[string]bool{
	"avm":      true,
	"evm":      true,
	"platform": true,
	"exchange": true,
	"contract": true,
}

// IsMeaningfulChain reports whether a raw chain name should be listed
func IsMeaningfulChain(name string) bool {
	lower := strings.ToLower(name)

	switch {
	case utf8.RuneCountInString(lower) <= 3:
		return false
	case infrastructureChains[lower]:
		return false
	case strings.HasPrefix(lower, "km"):
		return false
	case strings.Contains(lower, "test"), strings.Contains(lower, "dev"):
		return false
	}
	return true
}

// ICMVMIDLengthHint is the vmID length at or above which a VM is assumed
// to be ICM capable. It is a heuristic, not a protocol rule.
const ICMVMIDLengthHint = 45

// icmVMIDs are VMs known to support interchain messaging
var icmVMIDs = map[string]bool{
	"mgj786NP7uDwBCcq6YwThhaN8FLyybkCa4zBWTQbNgmK6k9A6": true,
	"mDVSxzeWHmgqrcXK1tPYqavqTK5MC3mMqme6r3a6cz2fqMfqf": true,
	"kLPs8zGsTVZ28DhP1VefPCFbCgS7o5bDNez8JUxPVw9E6Ubbz": true,
	"rXJumPDqx4X7eduok5AL1xdWsUG2Vg7kZNMdtGNEYkrn8qDY7": true,
	"jvYyfQTxGMJLuGWa55kdP2p2zSUYsQ5Raupu4TW34ZAUBAbtq": true,
}

// IsICMEnabled reports whether vmID is known or assumed to support ICM
func IsICMEnabled(vmID string) bool {
	return icmVMIDs[vmID] || len(vmID) >= ICMVMIDLengthHint
}

// profile is the static metadata attached to well-known L1s
type profile struct {
	keys        []string
	displayName string
	description string
	website     string
	symbol      string
}

// profiles are matched in order against the lower-cased raw chain name
var profiles = []profile{
	{
		keys:        []string{"dexalot"},
		displayName: "Dexalot",
		description: "A decentralized exchange focused on bringing traditional centralized exchange functionality to DeFi.",
		website:     "https://dexalot.com/",
		symbol:      "ALOT",
	},
	{
		keys:        []string{"beam"},
		displayName: "Beam",
		description: "A gaming-focused blockchain platform enabling seamless blockchain technology integration into games.",
		website:     "https://www.onbeam.com/",
		symbol:      "BEAM",
	},
	{
		keys:        []string{"gunz"},
		displayName: "GUNZ",
		description: "A Web3 gaming platform featuring Battle Royale and competitive gaming experiences.",
		website:     "https://gunz.dev/",
		symbol:      "GUNZ",
	},
	{
		keys:        []string{"defi", "crystalvale"},
		displayName: "DeFi Kingdoms Crystalvale",
		description: "A blockchain gaming metaverse featuring DeFi Kingdom's fantasy RPG gameplay and economic systems.",
		website:     "https://defikingdoms.com/",
		symbol:      "JEWEL",
	},
}

func lookupProfile(rawName string) (profile, bool) {
	lower := strings.ToLower(rawName)
	for _, p := range profiles {
		for _, key := range p.keys {
			if strings.Contains(lower, key) {
				return p, true
			}
		}
	}
	return profile{}, false
}

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	wordStart     = regexp.MustCompile(`\b\w`)
)

// FormatNetworkName turns a raw chain name into a display name
func FormatNetworkName(rawName string) string {
	if p, ok := lookupProfile(rawName); ok {
		return p.displayName
	}
	spaced := camelBoundary.ReplaceAllString(rawName, "$1 $2")
	return wordStart.ReplaceAllStringFunc(spaced, strings.ToUpper)
}

// Describe returns the description for a chain
func Describe(rawName string) string {
	if p, ok := lookupProfile(rawName); ok {
		return p.description
	}
	return fmt.Sprintf("%s - A specialized blockchain network built on Avalanche for enhanced performance and custom functionality.", rawName)
}

// Website returns the known website for a chain, or ""
func Website(rawName string) string {
	if p, ok := lookupProfile(rawName); ok {
		return p.website
	}
	return ""
}

// TokenSymbol returns the known token symbol, or up to five upper-cased
// characters of the name
func TokenSymbol(rawName string) string {
	if p, ok := lookupProfile(rawName); ok {
		return p.symbol
	}
	upper := []rune(strings.ToUpper(rawName))
	if len(upper) > 5 {
		upper = upper[:5]
	}
	return string(upper)
}

var (
	nanoPerAVAX = big.NewFloat(1e9)
)

// FormatStake renders a weight in nAVAX as a short AVAX amount
func FormatStake(weight string) string {
	n, ok := new(big.Float).SetString(strings.TrimSpace(weight))
	if !ok {
		return "Unknown"
	}
	avax, _ := new(big.Float).Quo(n, nanoPerAVAX).Float64()

	switch {
	case avax >= 1_000_000:
		return fmt.Sprintf("%.1fM AVAX", avax/1_000_000)
	case avax >= 1_000:
		return fmt.Sprintf("%.1fK AVAX", avax/1_000)
	default:
		return fmt.Sprintf("%.0f AVAX", avax)
	}
}
